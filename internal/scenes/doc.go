/*
Package scenes implements the conversational state machine of the skill.

Each scene is a stateless singleton with two capabilities: produce a reply
for the current turn, and resolve its local transition rules. The Machine
owns the fixed resolution order (global interruption first, then local
rules, then a no-op transition) and the closed registry the breadcrumb
mechanism resolves against.
*/
package scenes

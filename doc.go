/*
Package skene is a deterministic scene state machine for building
voice-assistant skills.

It implements the conversational core of a skill: given an incoming turn
(recognized intents, NLU entities, and the prior session state), it decides
which scene replies next and what state to carry forward. Transport,
NLU, and rendering live outside the engine behind small ports.

# Concept

Skene treats the conversation as a closed set of scenes. Each scene is a
stateless behavior unit with a reply rule and local transition rules; a
shared global rule models interruptions ("tell me about X") that may fire
from any scene. All per-session data travels in the request/response
payload, so the engine itself holds no session storage and one engine
instance can serve concurrent turns.

# Usage

	content, err := csvstore.New("content")
	if err != nil {
		log.Fatal(err)
	}

	engine, err := skene.New(content)
	if err != nil {
		log.Fatal(err)
	}

	reply, next, _ := engine.HandleTurn(ctx, domain.Request{
		Intents: map[string]domain.Intent{domain.IntentStartGame: {}},
		Session: domain.SessionState{},
	})

The returned state blob is round-tripped by the caller on the next turn;
durability is the transport layer's responsibility.
*/
package skene

// Package server implements the HTTP API of the KhetiAI backend.
//
// The server is a gin engine exposing the assistant to the farmer-facing
// frontend:
//
// Chat:
//   - POST /api/v1/chat/message: text chat, optional spoken reply
//   - POST /api/v1/chat/voice: audio upload, transcribed then answered
//     with both text and audio
//   - POST /api/v1/chat/conversation: open a conversation envelope
//   - GET /api/v1/chat/conversations: list conversations
//   - GET /api/v1/chat/conversation/:id: fetch one conversation
//
// Crop analysis:
//   - POST /api/v1/crop-analysis/analyze: image upload, runs the local
//     feature pipeline and the vision model, returns the structured verdict
//
// Health:
//   - GET /, /health, /api/v1/health, /api/v1/health/detailed
//
// Conversations are stateless envelopes: the server issues IDs and echoes
// metadata but stores nothing between requests. History, when a client
// keeps any, travels in full on each chat call.
//
// # Error Handling
//
// Client mistakes (bad upload type, oversized file, empty message) return
// 400 with a JSON error body. Collaborator failures (model APIs, TTS)
// return 502. Everything else is a 500. Error bodies are
// {"error": "human-readable description"}.
package server

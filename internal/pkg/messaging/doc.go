// Package messaging hides the broker behind a small publish/consume API so
// modules can emit domain events without knowing whether NATS, NSQ, Kafka,
// Google Pub/Sub or the in-process memory bus carries them.
package messaging

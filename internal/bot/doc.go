package bot

// Package bot holds the chat-facing side of the relay: the Telegram
// long-polling transport, the command router with allow-list enforcement,
// and outbound message chunking for the transport's length limit.

package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ytget/ytrelay/internal/errkind"
	"github.com/ytget/ytrelay/internal/model"
	"github.com/ytget/ytrelay/internal/resolve"
)

// User-facing messages
const (
	helpText = "Send me a YouTube link and I will download the video.\n\n" +
		"Commands:\n" +
		"/download <url> — download a single video\n" +
		"/playlist <url> — download every video of a playlist\n" +
		"/help — this message"

	formatHint      = "I need a video link. Usage: /download <youtube-url>"
	unauthorizedMsg = "Sorry, you are not on the allow-list for this bot."
	badURLMsg       = "That does not look like a YouTube link I can handle."
	ackMsg          = "Got it, downloading. I will report back here."
)

// Router classifies inbound chat commands, enforces the allow-list, and
// delegates valid download requests to the pipeline. Validation failures
// are answered in chat and never reach the orchestrator.
type Router struct {
	downloader Downloader
	playlists  PlaylistLister
	sender     Sender
	allowed    map[int64]struct{}
	logger     zerolog.Logger
}

// NewRouter creates a router. An empty allowedIDs slice means unrestricted
// access.
func NewRouter(downloader Downloader, playlists PlaylistLister, sender Sender, allowedIDs []int64, logger zerolog.Logger) *Router {
	allowed := make(map[int64]struct{}, len(allowedIDs))
	for _, id := range allowedIDs {
		allowed[id] = struct{}{}
	}
	return &Router{
		downloader: downloader,
		playlists:  playlists,
		sender:     sender,
		allowed:    allowed,
		logger:     logger.With().Str("component", "router").Logger(),
	}
}

// HandleMessage processes one inbound message to completion, including the
// download itself. The transport decides whether to call it concurrently.
func (r *Router) HandleMessage(ctx context.Context, msg InboundMessage) {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}

	command, arg := splitCommand(text)
	switch command {
	case "/start", "/help":
		r.reply(msg.ChatID, helpText)
	case "/download":
		r.handleDownload(ctx, msg, arg)
	case "/playlist":
		r.handlePlaylist(ctx, msg, arg)
	default:
		if strings.HasPrefix(command, "/") {
			r.reply(msg.ChatID, formatHint)
			return
		}
		// A bare URL works like /download.
		r.handleDownload(ctx, msg, text)
	}
}

func (r *Router) handleDownload(ctx context.Context, msg InboundMessage, rawURL string) {
	if verr := r.validate(msg.SenderID, rawURL); verr != nil {
		r.logger.Debug().Int64("sender_id", msg.SenderID).Str("reason", verr.Reason).Msg("request rejected")
		r.reply(msg.ChatID, verr.Reason)
		return
	}

	req := model.NewDownloadRequest(rawURL, msg.SenderID, msg.ChatID)
	r.reply(msg.ChatID, ackMsg)

	outcome := r.downloader.Download(ctx, req)
	r.reportOutcome(msg.ChatID, outcome)
}

func (r *Router) handlePlaylist(ctx context.Context, msg InboundMessage, rawURL string) {
	if rawURL == "" {
		r.reply(msg.ChatID, "I need a playlist link. Usage: /playlist <youtube-playlist-url>")
		return
	}
	if !r.isAllowed(msg.SenderID) {
		r.reply(msg.ChatID, unauthorizedMsg)
		return
	}

	items, err := r.playlists.Playlist(ctx, rawURL)
	if err != nil {
		r.logger.Warn().Err(err).Str("url", rawURL).Msg("playlist expansion failed")
		r.reply(msg.ChatID, fmt.Sprintf("Could not read that playlist: %v", err))
		return
	}
	if len(items) == 0 {
		r.reply(msg.ChatID, "That playlist looks empty.")
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d videos:\n", len(items))
	for i, it := range items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, it.Title)
	}
	r.reply(msg.ChatID, b.String())

	for _, it := range items {
		req := model.NewDownloadRequest(it.URL, msg.SenderID, msg.ChatID)
		r.reportOutcome(msg.ChatID, r.downloader.Download(ctx, req))
		if ctx.Err() != nil {
			return
		}
	}
}

// validate rejects a request before it reaches the pipeline: malformed
// argument, unauthorized requester, unrecognized host.
func (r *Router) validate(senderID int64, rawURL string) *errkind.ValidationError {
	if rawURL == "" || strings.ContainsAny(rawURL, " \t") {
		return &errkind.ValidationError{Reason: formatHint}
	}
	if !r.isAllowed(senderID) {
		return &errkind.ValidationError{Reason: unauthorizedMsg}
	}
	if !resolve.IsMediaURL(rawURL) {
		return &errkind.ValidationError{Reason: badURLMsg}
	}
	return nil
}

// isAllowed reports whether the sender may trigger downloads. An empty
// allow-list admits everyone.
func (r *Router) isAllowed(senderID int64) bool {
	if len(r.allowed) == 0 {
		return true
	}
	_, ok := r.allowed[senderID]
	return ok
}

func (r *Router) reportOutcome(chatID int64, outcome model.Outcome) {
	if outcome.Succeeded() {
		r.reply(chatID, fmt.Sprintf("Done! Saved to %s", outcome.Path))
		return
	}

	var provErr *errkind.ProvisionError
	if errors.As(outcome.Err, &provErr) {
		r.reply(chatID, fmt.Sprintf("Could not prepare the download folder: %v", provErr.Err))
		return
	}
	r.reply(chatID, fmt.Sprintf("Sorry, that did not work: %v", outcome.Err))
}

func (r *Router) reply(chatID int64, text string) {
	if err := r.sender.Send(chatID, text); err != nil {
		r.logger.Error().Err(err).Int64("chat_id", chatID).Msg("failed to send reply")
	}
}

// splitCommand separates the leading command word from its argument,
// stripping the @BotName suffix Telegram appends in group chats.
func splitCommand(text string) (string, string) {
	parts := strings.SplitN(text, " ", 2)
	command := parts[0]
	if at := strings.Index(command, "@"); at > 0 && strings.HasPrefix(command, "/") {
		command = command[:at]
	}
	arg := ""
	if len(parts) == 2 {
		arg = strings.TrimSpace(parts[1])
	}
	return command, arg
}

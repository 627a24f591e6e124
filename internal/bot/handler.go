package bot

import (
	"context"
	"os"

	"go.uber.org/zap"

	"github.com/Shrezz2001/dr-tara-core-api/internal/catalog"
	"github.com/Shrezz2001/dr-tara-core-api/internal/config"
)

// Replier generates the text reply for one user message.
type Replier interface {
	Generate(ctx context.Context, userText string, products []catalog.Product) (string, error)
}

// Synthesizer converts a reply into an audio artifact and returns its path.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, languageCode string) (string, error)
}

// Sender delivers replies to the originating chat.
type Sender interface {
	SendText(ctx context.Context, chatID int64, text string) error
	SendVoice(ctx context.Context, chatID int64, audioPath string) error
	SendAudio(ctx context.Context, chatID int64, audioPath string) error
}

// Catalog exposes the current product snapshot.
type Catalog interface {
	Snapshot() []catalog.Product
}

// Pipeline stages, used to label aborts in logs. The external outcome is the
// same 200 acknowledgement either way; only the logs tell failures apart.
const (
	stageGenerate   = "generate"
	stageSynthesize = "synthesize"
	stageDeliver    = "deliver"
)

// Handler runs the per-message pipeline:
// match -> generate -> [synthesize] -> deliver.
type Handler struct {
	sender    Sender
	replier   Replier
	synth     Synthesizer // nil disables voice replies
	cat       Catalog
	voiceLang string
	voiceKind string
	log       *zap.Logger
}

func NewHandler(sender Sender, replier Replier, synth Synthesizer, cat Catalog, voiceLang, voiceKind string, log *zap.Logger) *Handler {
	return &Handler{
		sender:    sender,
		replier:   replier,
		synth:     synth,
		cat:       cat,
		voiceLang: voiceLang,
		voiceKind: voiceKind,
		log:       log,
	}
}

// HandleMessage processes one inbound message. It never returns an error: the
// webhook acknowledges the platform regardless of outcome, and every internal
// failure ends the pipeline for this message only.
func (h *Handler) HandleMessage(ctx context.Context, chatID int64, text string) {
	products := catalog.Match(text, h.cat.Snapshot())

	reply, err := h.replier.Generate(ctx, text, products)
	if err != nil {
		h.abort(stageGenerate, chatID, err)
		return
	}

	if h.synth == nil {
		if err := h.sender.SendText(ctx, chatID, reply); err != nil {
			h.abort(stageDeliver, chatID, err)
		}
		return
	}

	audioPath, err := h.synth.Synthesize(ctx, reply, h.voiceLang)
	if err != nil {
		h.abort(stageSynthesize, chatID, err)
		return
	}
	defer func() {
		if err := os.Remove(audioPath); err != nil {
			h.log.Warn("bot: removing audio artifact failed", zap.String("path", audioPath), zap.Error(err))
		}
	}()

	send := h.sender.SendVoice
	if h.voiceKind == config.VoiceKindAudio {
		send = h.sender.SendAudio
	}
	if err := send(ctx, chatID, audioPath); err != nil {
		h.abort(stageDeliver, chatID, err)
	}
}

func (h *Handler) abort(stage string, chatID int64, err error) {
	h.log.Error("bot: pipeline aborted",
		zap.String("stage", stage),
		zap.Int64("chat_id", chatID),
		zap.Error(err),
	)
}

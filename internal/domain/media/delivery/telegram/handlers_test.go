package telegram

import (
	"context"
	"testing"

	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conte777/tgmedia-bot/internal/domain/media/entities"
)

func TestHandleChosenInlineResult_IgnoresResultWithoutInlineMessageID(t *testing.T) {
	// No use case wired: reaching the pipeline here would panic
	h := NewHandlers(nil, nil, 0, zerolog.Nop())

	update := &models.Update{
		ChosenInlineResult: &models.ChosenInlineResult{
			ResultID: "1",
			From:     models.User{ID: 7},
			Query:    "https://youtu.be/abc",
		},
	}

	assert.NotPanics(t, func() {
		h.HandleChosenInlineResult(context.Background(), nil, update)
	})
}

func TestExtractFileID(t *testing.T) {
	tests := []struct {
		name string
		msg  *models.Message
		kind entities.MediaKind
		want string
	}{
		{
			name: "Photo takes the largest size",
			msg: &models.Message{Photo: []models.PhotoSize{
				{FileID: "small"}, {FileID: "medium"}, {FileID: "large"},
			}},
			kind: entities.MediaKindImage,
			want: "large",
		},
		{
			name: "Video",
			msg:  &models.Message{Video: &models.Video{FileID: "vid"}},
			kind: entities.MediaKindVideo,
			want: "vid",
		},
		{
			name: "Document",
			msg:  &models.Message{Document: &models.Document{FileID: "doc"}},
			kind: entities.MediaKindDocument,
			want: "doc",
		},
		{
			name: "Nil message",
			kind: entities.MediaKindVideo,
			want: "",
		},
		{
			name: "Kind mismatch yields nothing",
			msg:  &models.Message{Video: &models.Video{FileID: "vid"}},
			kind: entities.MediaKindImage,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractFileID(tt.msg, tt.kind))
		})
	}
}

func TestInputMediaFor(t *testing.T) {
	t.Run("Image", func(t *testing.T) {
		media := inputMediaFor(entities.FileRef{FileID: "f", Kind: entities.MediaKindImage}, "cap")
		photo, ok := media.(*models.InputMediaPhoto)
		require.True(t, ok)
		assert.Equal(t, "f", photo.Media)
		assert.Equal(t, "cap", photo.Caption)
	})

	t.Run("Video", func(t *testing.T) {
		media := inputMediaFor(entities.FileRef{FileID: "f", Kind: entities.MediaKindVideo}, "")
		video, ok := media.(*models.InputMediaVideo)
		require.True(t, ok)
		assert.True(t, video.SupportsStreaming)
	})

	t.Run("Document", func(t *testing.T) {
		media := inputMediaFor(entities.FileRef{FileID: "f", Kind: entities.MediaKindDocument}, "")
		_, ok := media.(*models.InputMediaDocument)
		require.True(t, ok)
	})
}

func TestMatchDirectMessage(t *testing.T) {
	tests := []struct {
		name   string
		update *models.Update
		want   bool
	}{
		{
			name: "Private text message",
			update: &models.Update{Message: &models.Message{
				Text: "https://youtu.be/abc",
				Chat: models.Chat{Type: "private"},
			}},
			want: true,
		},
		{
			name: "Command is left to command handlers",
			update: &models.Update{Message: &models.Message{
				Text: "/settings",
				Chat: models.Chat{Type: "private"},
			}},
			want: false,
		},
		{
			name: "Group chat",
			update: &models.Update{Message: &models.Message{
				Text: "https://youtu.be/abc",
				Chat: models.Chat{Type: "group"},
			}},
			want: false,
		},
		{
			name: "Non-text message",
			update: &models.Update{Message: &models.Message{
				Chat: models.Chat{Type: "private"},
			}},
			want: false,
		},
		{
			name:   "No message",
			update: &models.Update{},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchDirectMessage(tt.update))
		})
	}
}

func TestSettingsKeyboard(t *testing.T) {
	kb := settingsKeyboard(entities.DefaultSettings())

	require.Len(t, kb.InlineKeyboard, 3)
	assert.Equal(t, "✅ Best", kb.InlineKeyboard[0][0].Text)
	assert.Equal(t, "qbest", kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "✅ Link: on", kb.InlineKeyboard[1][0].Text)
	assert.Equal(t, "✅ Send: video", kb.InlineKeyboard[2][0].Text)
}

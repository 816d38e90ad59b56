package telegram

import (
	"bytes"

	tele "gopkg.in/telebot.v3"

	"github.com/FACorreiaa/go-gas-station-finder/internal/types"
)

// Chat is the send/edit/delete contract of one conversation.
type Chat interface {
	Typing() error
	Send(text string) (*tele.Message, error)
	Edit(msg *tele.Message, text string) error
	Delete(msg *tele.Message) error
	SendDocument(file *types.ExportFile, caption string) error
}

// teleChat binds Chat to a telebot update context.
type teleChat struct {
	c tele.Context
}

var _ Chat = teleChat{}

func (t teleChat) Typing() error {
	return t.c.Notify(tele.Typing)
}

func (t teleChat) Send(text string) (*tele.Message, error) {
	return t.c.Bot().Send(t.c.Recipient(), text, tele.ModeMarkdown)
}

func (t teleChat) Edit(msg *tele.Message, text string) error {
	_, err := t.c.Bot().Edit(msg, text, tele.ModeMarkdown)
	return err
}

func (t teleChat) Delete(msg *tele.Message) error {
	return t.c.Bot().Delete(msg)
}

func (t teleChat) SendDocument(file *types.ExportFile, caption string) error {
	doc := &tele.Document{
		File:     tele.FromReader(bytes.NewReader(file.Content)),
		FileName: file.Filename,
		MIME:     "text/csv",
		Caption:  caption,
	}
	_, err := t.c.Bot().Send(t.c.Recipient(), doc, tele.ModeMarkdown)
	return err
}

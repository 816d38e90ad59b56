package telegram

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"

	appMiddleware "github.com/FACorreiaa/go-gas-station-finder/app/middleware"
	"github.com/FACorreiaa/go-gas-station-finder/internal/api/finder"
	"github.com/FACorreiaa/go-gas-station-finder/internal/api/formatter"
	"github.com/FACorreiaa/go-gas-station-finder/internal/types"
)

type op struct {
	kind string
	id   int
	text string
}

type fakeChat struct {
	ops     []op
	nextID  int
	docErr  error
	sentDoc *types.ExportFile
}

func (f *fakeChat) Typing() error { return nil }

func (f *fakeChat) Send(text string) (*tele.Message, error) {
	f.nextID++
	f.ops = append(f.ops, op{kind: "send", id: f.nextID, text: text})
	return &tele.Message{ID: f.nextID}, nil
}

func (f *fakeChat) Edit(msg *tele.Message, text string) error {
	f.ops = append(f.ops, op{kind: "edit", id: msg.ID, text: text})
	return nil
}

func (f *fakeChat) Delete(msg *tele.Message) error {
	f.ops = append(f.ops, op{kind: "delete", id: msg.ID})
	return nil
}

func (f *fakeChat) SendDocument(file *types.ExportFile, caption string) error {
	if f.docErr != nil {
		return f.docErr
	}
	f.sentDoc = file
	f.ops = append(f.ops, op{kind: "document", text: caption})
	return nil
}

func (f *fakeChat) kinds() []string {
	out := make([]string, len(f.ops))
	for i, o := range f.ops {
		out[i] = o.kind
	}
	return out
}

type MockFinder struct {
	mock.Mock
}

func (m *MockFinder) Handle(ctx context.Context, text string) (*types.HandleResult, error) {
	return m.HandleWithProgress(ctx, text, nil)
}

func (m *MockFinder) HandleWithProgress(ctx context.Context, text string, progress finder.ProgressFunc) (*types.HandleResult, error) {
	args := m.Called(ctx, text)
	res, _ := args.Get(0).(*types.HandleResult)
	if res != nil && progress != nil {
		for _, s := range res.StatusUpdates {
			progress(s)
		}
	}
	return res, args.Error(1)
}

func newHandler() (*Handler, *MockFinder) {
	svc := new(MockFinder)
	return NewHandler(svc, slog.New(slog.NewTextHandler(io.Discard, nil))), svc
}

func exportResult() *types.HandleResult {
	q := types.Query{Kind: types.QueryKindZIP, Key: "90210"}
	return &types.HandleResult{
		StatusUpdates: []string{"searching", "generating"},
		FinalText:     "preview",
		Export:        &types.ExportFile{Filename: "gas_stations_90210.csv", Content: []byte("x")},
		Results:       []types.QueryResult{{Query: q, Stations: []types.StationRecord{{Name: "Shell"}}}},
	}
}

func TestMessage_StatusEditedThenDeletedAfterExport(t *testing.T) {
	h, svc := newHandler()
	svc.On("HandleWithProgress", mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := appMiddleware.GetSearchIDFromContext(ctx)
		return ok
	}), "90210").Return(exportResult(), nil).Once()

	chat := &fakeChat{}
	require.NoError(t, h.Message(context.Background(), chat, "90210"))

	assert.Equal(t, []string{"send", "edit", "document", "delete", "send"}, chat.kinds())
	assert.Equal(t, "searching", chat.ops[0].text)
	assert.Equal(t, op{kind: "edit", id: 1, text: "generating"}, chat.ops[1])
	assert.Contains(t, chat.ops[2].text, "Total Stations:* 1")
	assert.Equal(t, 1, chat.ops[3].id)
	assert.Equal(t, "preview", chat.ops[4].text)
	assert.Equal(t, "gas_stations_90210.csv", chat.sentDoc.Filename)
}

func TestMessage_NoExportEditsStatus(t *testing.T) {
	h, svc := newHandler()
	svc.On("HandleWithProgress", mock.Anything, "Atlantis FL").Return(&types.HandleResult{
		StatusUpdates: []string{"searching"},
		FinalText:     "not found",
	}, nil).Once()

	chat := &fakeChat{}
	require.NoError(t, h.Message(context.Background(), chat, "Atlantis FL"))

	assert.Equal(t, []string{"send", "edit"}, chat.kinds())
	assert.Equal(t, "not found", chat.ops[1].text)
}

func TestMessage_ClassificationFailureRepliesDirectly(t *testing.T) {
	h, svc := newHandler()
	svc.On("HandleWithProgress", mock.Anything, "ZZ").Return(&types.HandleResult{
		FinalText: formatter.ClassificationHelpText,
	}, nil).Once()

	chat := &fakeChat{}
	require.NoError(t, h.Message(context.Background(), chat, "ZZ"))

	require.Len(t, chat.ops, 1)
	assert.Equal(t, op{kind: "send", id: 1, text: formatter.ClassificationHelpText}, chat.ops[0])
}

func TestMessage_DocumentFailure(t *testing.T) {
	h, svc := newHandler()
	svc.On("HandleWithProgress", mock.Anything, "90210").Return(exportResult(), nil).Once()

	chat := &fakeChat{docErr: errors.New("upload failed")}
	require.NoError(t, h.Message(context.Background(), chat, "90210"))

	last := chat.ops[len(chat.ops)-1]
	assert.Equal(t, "edit", last.kind)
	assert.Equal(t, formatter.TryAgainText, last.text)
}

func TestMessage_PipelineError(t *testing.T) {
	h, svc := newHandler()
	svc.On("HandleWithProgress", mock.Anything, "90210").Return(nil, errors.New("boom")).Once()

	chat := &fakeChat{}
	require.NoError(t, h.Message(context.Background(), chat, "90210"))
	assert.Equal(t, formatter.TryAgainText, chat.ops[0].text)
}

func TestCommand(t *testing.T) {
	h, _ := newHandler()
	chat := &fakeChat{}

	require.NoError(t, h.Command(chat, "/about"))
	require.NoError(t, h.Command(chat, "/nope"))

	assert.Equal(t, formatter.AboutText, chat.ops[0].text)
	assert.Equal(t, formatter.HelpText, chat.ops[1].text)
}

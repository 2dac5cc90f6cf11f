package runner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/hupe1980/geminimesh/artifact"
	"github.com/hupe1980/geminimesh/core"
	"github.com/hupe1980/geminimesh/logging"
	"github.com/hupe1980/geminimesh/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var pngBytes = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

func scriptedModel() *model.MockModel {
	m := model.NewMockModel("test-model", "mock")
	m.AddText("Hello ")
	m.AddImage("image/png", pngBytes)
	m.AddText("World")
	return m
}

func userText(text string) core.Turn {
	return core.Turn{Role: core.RoleUser, ContentType: core.ContentTypeText, Text: text}
}

func TestRunStreamingAndBatchEquivalence(t *testing.T) {
	input := Input{
		Turns:          []core.Turn{userText("hi")},
		CurrentMessage: "generate",
		Config:         model.GenerationConfig{ResponseModalities: []string{"TEXT", "IMAGE"}},
	}

	streamInput := input
	streamInput.Stream = true
	streamEnv, err := New(scriptedModel()).Run(context.Background(), streamInput)
	require.NoError(t, err)

	batchEnv, err := New(scriptedModel()).Run(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, streamEnv.Text, batchEnv.Text)
	assert.Equal(t, streamEnv.Images, batchEnv.Images)
	assert.Equal(t, "Hello World", batchEnv.Text)
	require.Len(t, batchEnv.Images, 1)
	assert.Equal(t, "generated_image_0.png", batchEnv.Images[0].FileName)
}

func TestRunEnvelopeMetadata(t *testing.T) {
	r := New(scriptedModel())

	env, err := r.Run(context.Background(), Input{
		CurrentMessage: "go",
		Config:         model.GenerationConfig{ResponseModalities: []string{"TEXT", "IMAGE"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "test-model", env.Model)
	assert.Equal(t, []string{"TEXT", "IMAGE"}, env.ResponseModalities)
	assert.Equal(t, len(env.Text), env.Usage.TotalTokens)
}

func TestRunSanitizesModelErrors(t *testing.T) {
	m := model.NewMockModel("test-model", "mock")
	m.FailWith(errors.New("provider blew up: \x00\x01\x02 raw bytes"))
	r := New(m)

	_, err := r.Run(context.Background(), Input{CurrentMessage: "go"})
	require.Error(t, err)

	var cerr *core.Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "provider blew up:  raw bytes", cerr.Message)
	assert.ErrorContains(t, err, "raw bytes")
}

func TestRunAnnotatesAssemblyErrors(t *testing.T) {
	r := New(scriptedModel())

	_, err := r.Run(context.Background(), Input{
		Turns: []core.Turn{
			userText("hello"),
			{Role: core.RoleUser, ContentType: core.ContentTypeImageURL, ImageURL: ""},
		},
		CurrentMessage: "go",
	})
	require.Error(t, err)

	var cerr *core.Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, core.KindValidation, cerr.Kind)
	assert.Equal(t, 1, cerr.TurnIndex)
}

func TestRunPersistsArtifacts(t *testing.T) {
	store := artifact.NewStore()
	r := New(scriptedModel(), func(o *Options) {
		o.Artifacts = store
	})

	env, err := r.Run(context.Background(), Input{CurrentMessage: "go"})
	require.NoError(t, err)
	require.Len(t, env.Images, 1)

	ids := store.Invocations()
	require.Len(t, ids, 1)
	names, err := store.List(ids[0])
	require.NoError(t, err)
	assert.Equal(t, []string{"generated_image_0.png"}, names)

	data, err := store.Get(ids[0], "generated_image_0.png")
	require.NoError(t, err)
	assert.Equal(t, pngBytes, data)
}

type modelCallRecord struct {
	model   string
	textLen int
	images  int
	err     error
}

type recordingLogger struct {
	logging.NoOpLogger
	calls []modelCallRecord
}

func (l *recordingLogger) LogModelCall(model string, textLen, images int, dur time.Duration, err error) {
	l.calls = append(l.calls, modelCallRecord{model: model, textLen: textLen, images: images, err: err})
}

func TestRunRecordsModelCall(t *testing.T) {
	logger := &recordingLogger{}
	r := New(scriptedModel(), func(o *Options) {
		o.Logger = logger
	})

	_, err := r.Run(context.Background(), Input{CurrentMessage: "go"})
	require.NoError(t, err)

	require.Len(t, logger.calls, 1)
	assert.Equal(t, "test-model", logger.calls[0].model)
	assert.Equal(t, len("Hello World"), logger.calls[0].textLen)
	assert.Equal(t, 1, logger.calls[0].images)
	assert.NoError(t, logger.calls[0].err)
}

func TestRunRecordsFailedModelCall(t *testing.T) {
	m := model.NewMockModel("test-model", "mock")
	m.FailWith(errors.New("boom"))
	logger := &recordingLogger{}
	r := New(m, func(o *Options) {
		o.Logger = logger
	})

	_, err := r.Run(context.Background(), Input{CurrentMessage: "go"})
	require.Error(t, err)

	require.Len(t, logger.calls, 1)
	assert.Error(t, logger.calls[0].err)
	assert.Zero(t, logger.calls[0].images)
}

func TestRunAllContinueOnFailure(t *testing.T) {
	m := model.NewMockModel("test-model", "mock")
	m.AddText("ok")
	r := New(m, func(o *Options) {
		o.ContinueOnFailure = true
	})

	inputs := []Input{
		{CurrentMessage: "first"},
		{Turns: []core.Turn{{Role: core.RoleUser, ContentType: core.ContentTypeImageURL}}, CurrentMessage: "bad"},
		{CurrentMessage: "third"},
	}

	results, err := r.RunAll(context.Background(), inputs)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.NoError(t, results[0].Err)
	assert.Equal(t, "ok", results[0].Envelope.Text)

	require.Error(t, results[1].Err)
	assert.Nil(t, results[1].Envelope)
	assert.Equal(t, 1, results[1].Item)

	assert.NoError(t, results[2].Err)
}

func TestRunAllAbortsWithItemPosition(t *testing.T) {
	m := model.NewMockModel("test-model", "mock")
	m.AddText("ok")
	r := New(m)

	inputs := []Input{
		{CurrentMessage: "first"},
		{Turns: []core.Turn{{Role: core.RoleUser, ContentType: core.ContentTypeImageURL}}, CurrentMessage: "bad"},
	}

	_, err := r.RunAll(context.Background(), inputs)
	require.Error(t, err)
	assert.ErrorContains(t, err, "item 1")
}

func TestRunAllAttachments(t *testing.T) {
	r := New(scriptedModel())

	results, err := r.RunAll(context.Background(), []Input{{CurrentMessage: "go"}})
	require.NoError(t, err)
	require.Len(t, results, 1)

	attachments := results[0].Attachments
	require.Len(t, attachments, 1)
	assert.Equal(t, "generated_image_0.png", attachments["image_0"].FileName)
	assert.Equal(t, "image/png", attachments["image_0"].MIMEType)
}

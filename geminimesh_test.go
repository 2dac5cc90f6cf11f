package geminimesh

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/geminimesh/config"
	"github.com/hupe1980/geminimesh/core"
	"github.com/hupe1980/geminimesh/logging"
	"github.com/hupe1980/geminimesh/model"
	"github.com/hupe1980/geminimesh/runner"
)

func testConfig() *config.Config {
	return &config.Config{
		APIKey:        "test-key",
		Model:         "gemini-2.5-flash-image-preview",
		FetchTimeout:  5 * time.Second,
		MaxImageBytes: 1 << 20,
		LogLevel:      "info",
	}
}

func TestDefaultLoggerIsStructured(t *testing.T) {
	cfg := testConfig()
	cfg.LogLevel = "debug"

	l := defaultLogger(cfg)
	require.NotNil(t, l)
	_, ok := l.(*logging.MeshLogger)
	assert.True(t, ok)
}

func TestAdapterGenerateContent(t *testing.T) {
	m := model.NewMockModel("gemini-2.5-flash-image-preview", "mock")
	m.AddText("a banana")
	m.AddImage("image/png", []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A})

	a, err := New(context.Background(), func(o *Options) {
		o.Config = testConfig()
		o.Model = m
	})
	require.NoError(t, err)

	env, err := a.GenerateContent(context.Background(), runner.Input{
		CurrentMessage: "draw a banana",
		Config:         model.GenerationConfig{ResponseModalities: []string{"TEXT", "IMAGE"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "a banana", env.Text)
	assert.Equal(t, "gemini-2.5-flash-image-preview", env.Model)
	require.Len(t, env.Images, 1)

	// Generated bytes are retrievable from the artifact store afterwards.
	ids := a.Artifacts().Invocations()
	require.Len(t, ids, 1)
	names, err := a.Artifacts().List(ids[0])
	require.NoError(t, err)
	assert.Equal(t, []string{"generated_image_0.png"}, names)
}

func TestAdapterGenerateAllContinueOnFailure(t *testing.T) {
	m := model.NewMockModel("gemini-2.5-flash-image-preview", "mock")
	m.AddText("ok")

	a, err := New(context.Background(), func(o *Options) {
		o.Config = testConfig()
		o.Model = m
		o.ContinueOnFailure = true
	})
	require.NoError(t, err)

	results, err := a.GenerateAll(context.Background(), []runner.Input{
		{CurrentMessage: "fine"},
		{Turns: []core.Turn{{Role: core.RoleUser, ContentType: core.ContentTypeImageURL}}},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.NoError(t, results[0].Err)
	assert.Error(t, results[1].Err)
}

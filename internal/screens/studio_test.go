package screens

import (
	"context"
	"testing"

	"github.com/jonathan/jobpilot/internal/generation"
	"github.com/jonathan/jobpilot/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreativeStudio_Send(t *testing.T) {
	gen := &fakeGenerator{reply: &generation.ChatReply{
		Text:    "Pesquise a empresa antes da entrevista.",
		Sources: []types.Source{{URI: "https://example.com/dicas", Title: "Dicas"}},
	}}
	env := newTestEnv(t, gen)
	c := NewCreativeStudio(env)
	ctx := context.Background()

	msgs := c.Messages(ctx)
	require.Len(t, msgs, 1)
	assert.Equal(t, types.RoleModel, msgs[0].Role)
	assert.Equal(t, WelcomeMessage, msgs[0].Text)

	reply, err := c.Send(ctx, "  Como me preparar?  ")
	require.NoError(t, err)
	assert.Equal(t, "Pesquise a empresa antes da entrevista.", reply.Text)

	require.Len(t, gen.chatHistory, 2)
	assert.Equal(t, types.ChatMessage{Role: types.RoleUser, Text: "Como me preparar?"}, gen.chatHistory[1])

	msgs = c.Messages(ctx)
	require.Len(t, msgs, 3)
	assert.Equal(t, types.RoleUser, msgs[1].Role)
	assert.Equal(t, types.RoleModel, msgs[2].Role)
	assert.Equal(t, "https://example.com/dicas", msgs[2].Sources[0].URI)
}

func TestCreativeStudio_Send_FailureAppendsApology(t *testing.T) {
	gen := &fakeGenerator{chatErr: &generation.Error{Op: generation.OpChat, Message: "Falha ao obter a resposta do chat."}}
	c := NewCreativeStudio(newTestEnv(t, gen))
	ctx := context.Background()

	reply, err := c.Send(ctx, "Olá")
	require.Error(t, err)
	assert.Equal(t, ErrorReply, reply.Text)

	msgs := c.Messages(ctx)
	require.Len(t, msgs, 3)
	assert.Equal(t, "Olá", msgs[1].Text)
	assert.Equal(t, ErrorReply, msgs[2].Text)
	assert.Equal(t, "Falha ao obter a resposta do chat.", c.Status().Error)
}

func TestCreativeStudio_SendEmptyAndReset(t *testing.T) {
	gen := &fakeGenerator{reply: &generation.ChatReply{Text: "ok"}}
	c := NewCreativeStudio(newTestEnv(t, gen))
	ctx := context.Background()

	_, err := c.Send(ctx, "   ")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Empty(t, gen.Calls())

	_, err = c.Send(ctx, "Oi")
	require.NoError(t, err)
	require.Len(t, c.Messages(ctx), 3)

	require.NoError(t, c.Reset(ctx))
	assert.Len(t, c.Messages(ctx), 1)
}

package screens

import (
	"bytes"
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/jonathan/jobpilot/internal/generation"
	"github.com/jonathan/jobpilot/internal/store"
	"github.com/jonathan/jobpilot/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeLeads() []types.Lead {
	return []types.Lead{
		{CompanyName: "Acme", ContactInfo: "rh@acme.com.br", Notes: "Página de carreiras"},
		{CompanyName: "Globex", ContactInfo: "globex.com/careers"},
		{CompanyName: "Initech", ContactInfo: "recrutadora@gmail.com"},
	}
}

func TestLeadFinder_SaveToHistoryIsIdempotent(t *testing.T) {
	gen := &fakeGenerator{leads: threeLeads()}
	env := newTestEnv(t, gen)
	f := NewLeadFinder(env, types.DefaultEmailPolicy())
	ctx := context.Background()

	leads, err := f.Search(ctx, generation.LeadQuery{JobTitle: " Engenheiro Go ", Location: "São Paulo"})
	require.NoError(t, err)
	require.Len(t, leads, 3)
	assert.Equal(t, "Engenheiro Go", gen.leadQuery.JobTitle)
	assert.Equal(t, generation.JobTypeAny, gen.leadQuery.JobType)
	assert.Equal(t, generation.SourceCompanies, gen.leadQuery.Source)

	added, err := f.SaveToHistory(ctx)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = f.SaveToHistory(ctx)
	require.NoError(t, err)
	assert.False(t, added)

	history := NewHistory(env).List(ctx)
	require.Len(t, history, 1)
	require.Equal(t, types.HistoryKindLeadSearch, history[0].Kind)
	rec := history[0].LeadSearch
	assert.Equal(t, "Engenheiro Go", rec.SearchTerm)
	assert.Equal(t, "São Paulo", rec.Location)
	assert.Len(t, rec.Leads, 3)
	assert.True(t, f.Results().Saved)

	_, err = f.Search(ctx, generation.LeadQuery{JobTitle: "SRE"})
	require.NoError(t, err)
	assert.False(t, f.Results().Saved, "a new search can be saved again")

	added, err = f.SaveToHistory(ctx)
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, 2, historyLen(t, env))
}

func TestLeadFinder_Search_Validation(t *testing.T) {
	gen := &fakeGenerator{}
	f := NewLeadFinder(newTestEnv(t, gen), types.DefaultEmailPolicy())

	_, err := f.Search(context.Background(), generation.LeadQuery{JobTitle: "  "})
	require.Error(t, err)
	assert.Equal(t, "Por favor, insira um cargo desejado.", UserMessage(err))
	assert.Empty(t, gen.Calls())

	_, err = f.SaveToHistory(context.Background())
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestLeadFinder_Search_FailureClearsResults(t *testing.T) {
	gen := &fakeGenerator{leads: threeLeads()}
	f := NewLeadFinder(newTestEnv(t, gen), types.DefaultEmailPolicy())
	ctx := context.Background()

	_, err := f.Search(ctx, generation.LeadQuery{JobTitle: "Dev"})
	require.NoError(t, err)

	gen.leadsErr = genErr(generation.OpFindLeads)
	_, err = f.Search(ctx, generation.LeadQuery{JobTitle: "Dev"})
	require.Error(t, err)

	assert.Empty(t, f.Results().Leads)
	assert.Equal(t, StateError, f.Status().State)
	assert.Equal(t, "Falha simulada.", f.Status().Error)
}

func TestLeadFinder_Search_Busy(t *testing.T) {
	gen := &fakeGenerator{
		leads:   threeLeads(),
		block:   make(chan struct{}),
		started: make(chan struct{}),
	}
	f := NewLeadFinder(newTestEnv(t, gen), types.DefaultEmailPolicy())
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := f.Search(ctx, generation.LeadQuery{JobTitle: "Dev"})
		done <- err
	}()
	<-gen.started

	assert.Equal(t, StateSubmitting, f.Status().State)
	_, err := f.Search(ctx, generation.LeadQuery{JobTitle: "Dev"})
	assert.ErrorIs(t, err, ErrBusy)

	close(gen.block)
	require.NoError(t, <-done)
	assert.Equal(t, StateSuccess, f.Status().State)
}

func TestLeadFinder_ExportCSV(t *testing.T) {
	f := NewLeadFinder(newTestEnv(t, &fakeGenerator{leads: threeLeads()}), types.DefaultEmailPolicy())
	ctx := context.Background()

	var buf bytes.Buffer
	_, err := f.ExportCSV(&buf)
	require.Error(t, err)

	_, err = f.Search(ctx, generation.LeadQuery{JobTitle: "Engenheiro de Dados"})
	require.NoError(t, err)

	name, err := f.ExportCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, "leads_Engenheiro_de_Dados.csv", name)
	assert.Contains(t, buf.String(), "Fonte,Informação de Contato,Notas")
	assert.Contains(t, buf.String(), "Acme,rh@acme.com.br,Página de carreiras")
}

func TestLeadFinder_Templates(t *testing.T) {
	f := NewLeadFinder(newTestEnv(t, &fakeGenerator{}), types.DefaultEmailPolicy())
	ctx := context.Background()

	templates := f.Templates(ctx)
	require.Len(t, templates, 1)
	assert.Equal(t, "default", templates[0].ID)

	created, err := f.CreateTemplate(ctx, "Curto", "Olá {empresa}")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	templates = f.Templates(ctx)
	require.Len(t, templates, 1)
	assert.Equal(t, created.ID, templates[0].ID)

	updated, err := f.UpdateTemplate(ctx, created.ID, "Curto", "Oi {empresa}")
	require.NoError(t, err)
	assert.Equal(t, "Oi {empresa}", updated.Body)
	assert.Equal(t, "Oi {empresa}", f.Templates(ctx)[0].Body)

	_, err = f.UpdateTemplate(ctx, "missing", "x", "y")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.CreateTemplate(ctx, "", "corpo")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "name", vErr.Field)
	assert.Equal(t, "Informe o nome do modelo.", vErr.Message)

	_, err = f.UpdateTemplate(ctx, created.ID, "Curto", "  \n ")
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "body", vErr.Field)
	assert.Equal(t, "O corpo do modelo está vazio.", vErr.Message)
	assert.Equal(t, "Oi {empresa}", f.Templates(ctx)[0].Body)

	require.NoError(t, f.DeleteTemplate(ctx, created.ID))
	assert.Equal(t, "default", f.Templates(ctx)[0].ID)
	assert.ErrorIs(t, f.DeleteTemplate(ctx, created.ID), ErrNotFound)
}

func TestLeadFinder_EmailDraft(t *testing.T) {
	env := newTestEnv(t, &fakeGenerator{})
	f := NewLeadFinder(env, types.DefaultEmailPolicy())
	ctx := context.Background()

	tmpl, err := f.CreateTemplate(ctx, "Curto", "Olá {empresa}, vaga de {cargo}. {seu_nome}")
	require.NoError(t, err)

	lead := types.Lead{CompanyName: "Acme", ContactInfo: "rh@acme.com.br"}
	link, err := f.EmailDraft(ctx, lead, tmpl.ID, "Dev Go")
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(link, "mailto:rh@acme.com.br?"))
	assert.NotContains(t, link, "+")
	query, err := url.ParseQuery(strings.SplitN(link, "?", 2)[1])
	require.NoError(t, err)
	assert.Equal(t, "Candidatura para Dev Go - [Seu Nome]", query.Get("subject"))
	assert.Equal(t, "Olá Acme, vaga de Dev Go. [Seu Nome]", query.Get("body"))

	require.NoError(t, store.Set(ctx, env.Store, store.KeyUserName, "Maria"))
	link, err = f.EmailDraft(ctx, lead, "", "Dev Go")
	require.NoError(t, err)
	query, _ = url.ParseQuery(strings.SplitN(link, "?", 2)[1])
	assert.Equal(t, "Candidatura para Dev Go - Maria", query.Get("subject"))
	assert.Equal(t, "Olá Acme, vaga de Dev Go. Maria", query.Get("body"))

	_, err = f.EmailDraft(ctx, types.Lead{CompanyName: "Initech", ContactInfo: "alguem@gmail.com"}, "", "Dev")
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)

	_, err = f.EmailDraft(ctx, lead, "missing", "Dev")
	assert.ErrorIs(t, err, ErrNotFound)
}

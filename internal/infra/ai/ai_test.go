package ai

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domai "github.com/bryanwahyu/contractlens/internal/domain/ai"
	"github.com/bryanwahyu/contractlens/internal/domain/comparison"
	"github.com/bryanwahyu/contractlens/internal/domain/drafting"
)

// scriptedClient replays responses in order and records requests.
type scriptedClient struct {
	mu        sync.Mutex
	responses []string
	errs      []error
	requests  []domai.Request
}

func (c *scriptedClient) Complete(_ context.Context, r domai.Request) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := len(c.requests)
	c.requests = append(c.requests, r)
	var err error
	if i < len(c.errs) {
		err = c.errs[i]
	}
	if err != nil {
		return "", err
	}
	if i < len(c.responses) {
		return c.responses[i], nil
	}
	return "", nil
}

func TestRetrying_RetriesTransientErrors(t *testing.T) {
	next := &scriptedClient{
		errs:      []error{errors.New("503 upstream"), errors.New("timeout"), nil},
		responses: []string{"", "", "ok"},
	}
	calls := 0
	r := NewRetrying(next, 3, time.Millisecond, zap.NewNop())
	r.OnCall = func() { calls++ }

	out, err := r.Complete(context.Background(), domai.Request{User: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Len(t, next.requests, 3)
	assert.Equal(t, 3, calls)
}

func TestRetrying_StopsOnQuota(t *testing.T) {
	next := &scriptedClient{errs: []error{domai.ErrQuotaExceeded}}
	r := NewRetrying(next, 5, time.Millisecond, nil)

	_, err := r.Complete(context.Background(), domai.Request{})
	assert.ErrorIs(t, err, domai.ErrQuotaExceeded)
	assert.Len(t, next.requests, 1)
}

func TestRetrying_GivesUp(t *testing.T) {
	boom := errors.New("boom")
	next := &scriptedClient{errs: []error{boom, boom, boom}}
	r := NewRetrying(next, 3, time.Millisecond, nil)

	_, err := r.Complete(context.Background(), domai.Request{})
	assert.ErrorIs(t, err, boom)
	assert.Len(t, next.requests, 3)
}

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New(context.Background(), Options{Provider: "llama"}, nil)
	assert.Error(t, err)

	_, err = New(context.Background(), Options{Provider: "llama", APIKey: "k"}, nil)
	assert.Error(t, err)
}

func TestNew_MissingKeyFailsCalls(t *testing.T) {
	for _, provider := range []string{"", ProviderGemini, ProviderOpenAI} {
		client, err := New(context.Background(), Options{Provider: provider}, zap.NewNop())
		require.NoError(t, err, provider)

		_, err = client.Complete(context.Background(), domai.Request{User: "hi"})
		assert.ErrorIs(t, err, domai.ErrMissingAPIKey, provider)

		_, err = NewComparer(client).Compare(context.Background(), []comparison.Label{"A", "B"}, []string{"x", "y"})
		assert.ErrorIs(t, err, domai.ErrMissingAPIKey, provider)
	}
}

func TestParseDifferences(t *testing.T) {
	t.Run("fenced array", func(t *testing.T) {
		diffs, err := ParseDifferences("```json\n[{\"clause_category\":\"Term\",\"contract_a_detail\":\"1y\",\"contract_b_detail\":\"2y\",\"analysis_of_difference\":\"longer\"}]\n```")
		require.NoError(t, err)
		require.Len(t, diffs, 1)
		assert.Equal(t, "Term", diffs[0].Category)
		assert.Equal(t, []string{"1y", "2y"}, diffs[0].Details)
	})
	t.Run("empty means none", func(t *testing.T) {
		for _, raw := range []string{"", "  ", "```json\n```", "[]", "null"} {
			diffs, err := ParseDifferences(raw)
			require.NoError(t, err, raw)
			assert.NotNil(t, diffs)
			assert.Empty(t, diffs)
		}
	})
	t.Run("single object", func(t *testing.T) {
		diffs, err := ParseDifferences(`{"clause_category":"Fees","analysis_of_difference":"x"}`)
		require.NoError(t, err)
		require.Len(t, diffs, 1)
		assert.Equal(t, "Fees", diffs[0].Category)
	})
	t.Run("malformed", func(t *testing.T) {
		for _, raw := range []string{"Sorry, I cannot help.", `{"foo":"bar"}`, `[1,2]`} {
			_, err := ParseDifferences(raw)
			assert.ErrorIs(t, err, comparison.ErrMalformedOutput, raw)
		}
	})
}

func TestComparer_NormalizesDetails(t *testing.T) {
	client := &scriptedClient{responses: []string{`[{"clause_category":"Term","contract_a_detail":"1y","analysis_of_difference":"B and C silent"}]`}}
	c := NewComparer(client)

	diffs, err := c.Compare(context.Background(), comparison.Labels(3), []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Len(t, diffs, 1)
	assert.Equal(t, []string{"1y", "N/A", "N/A"}, diffs[0].Details)

	req := client.requests[0]
	assert.False(t, req.JSON)
	assert.NotEmpty(t, req.System)
	assert.Contains(t, req.User, "contract_c_detail")
}

func TestComparer_LabelMismatch(t *testing.T) {
	_, err := NewComparer(&scriptedClient{}).Compare(context.Background(), comparison.Labels(2), []string{"a"})
	assert.Error(t, err)
}

func TestComparer_WrapsClientError(t *testing.T) {
	client := &scriptedClient{errs: []error{domai.ErrQuotaExceeded}}
	_, err := NewComparer(client).Compare(context.Background(), comparison.Labels(2), []string{"a", "b"})
	assert.ErrorIs(t, err, domai.ErrQuotaExceeded)
}

func TestDrafter_ExtractTemplate(t *testing.T) {
	client := &scriptedClient{responses: []string{"```json\n{\"Template\":\"Between Party_Name\",\"Placeholders\":{\"Party_Name\":{\"description\":\"party\",\"original_value\":\"Acme\"}}}\n```"}}
	tpl, err := NewDrafter(client).ExtractTemplate(context.Background(), "Between Acme\x00")
	require.NoError(t, err)
	assert.Equal(t, "Between Party_Name", tpl.Body)
	assert.Equal(t, "Acme", tpl.Placeholders["Party_Name"].OriginalValue)
	assert.True(t, client.requests[0].JSON)
	assert.NotContains(t, client.requests[0].User, "\x00")
}

func TestDrafter_ExtractTemplateInvalid(t *testing.T) {
	for _, raw := range []string{"not json", `{"Template":"","Placeholders":{}}`} {
		_, err := NewDrafter(&scriptedClient{responses: []string{raw}}).ExtractTemplate(context.Background(), "x")
		assert.ErrorIs(t, err, drafting.ErrInvalidTemplate, raw)
	}
}

func TestDrafter_FillTemplateSendsResolvedValues(t *testing.T) {
	client := &scriptedClient{responses: []string{"Between Initech"}}
	tpl := &drafting.Template{
		Body: "Between Party_Name on Date",
		Placeholders: map[string]drafting.Placeholder{
			"Party_Name": {OriginalValue: "Acme"},
			"Date":       {OriginalValue: "1 Jan"},
		},
	}
	out, err := NewDrafter(client).FillTemplate(context.Background(), tpl, map[string]string{"Party_Name": "Initech"})
	require.NoError(t, err)
	assert.Equal(t, "Between Initech", out)
	user := client.requests[0].User
	assert.Contains(t, user, `"Party_Name": "Initech"`)
	assert.Contains(t, user, `"Date": "1 Jan"`)
}

func TestDrafter_TextAnswers(t *testing.T) {
	client := &scriptedClient{responses: []string{"```\nmodified\n```", "  1. Parties - who  \n", "```html\n<html><body>x</body></html>\n```"}}
	d := NewDrafter(client)

	out, err := d.Modify(context.Background(), "c", "r")
	require.NoError(t, err)
	assert.Equal(t, "modified", out)

	out, err = d.Sections(context.Background(), "c")
	require.NoError(t, err)
	assert.Equal(t, "1. Parties - who", out)

	out, err = d.Style(context.Background(), "x", "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<html>"))
}

package persona

import (
	"testing"

	"github.com/alexanderramin/archsage/internal/knowledge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry_OnePersonaPerDomain(t *testing.T) {
	r := NewDefaultRegistry()
	for _, d := range knowledge.AllDomains() {
		p, err := r.For(string(d))
		require.NoError(t, err, "domain %s", d)
		assert.Equal(t, string(d), p.ID)
		assert.NotEmpty(t, p.DisplayName)
		assert.NotEmpty(t, p.Preamble)
	}
	assert.Len(t, r.List(), len(knowledge.AllDomains()))
}

func TestFor_CaseInsensitive(t *testing.T) {
	r := NewDefaultRegistry()
	for _, tool := range []string{" Vastu ", "VASTU", "vastu\n", "VaStU"} {
		p, err := r.For(tool)
		require.NoError(t, err, "tool %q", tool)
		assert.Equal(t, "vastu", p.ID)
	}
}

func TestFor_NearMissesNotFound(t *testing.T) {
	r := NewDefaultRegistry()
	for _, tool := range []string{"vastus", "vas tu", "vastu-shastra", "structure", "COSTS", "interiors"} {
		_, err := r.For(tool)
		assert.ErrorIs(t, err, ErrNotFound, "tool %q", tool)
	}
}

func TestFor_UnknownToolType(t *testing.T) {
	r := NewDefaultRegistry()
	for _, tool := range []string{"", "quantum", "vr", "iot", "landscape"} {
		_, err := r.For(tool)
		assert.ErrorIs(t, err, ErrNotFound, "tool %q", tool)
	}
}

func TestList_RegistrationOrder(t *testing.T) {
	r := NewDefaultRegistry()
	var ids []string
	for _, p := range r.List() {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"vastu", "structural", "interior", "sustainability", "cost"}, ids)
}

func TestNewRegistry_DuplicateReplaces(t *testing.T) {
	r := NewRegistry(
		Persona{ID: "x", DisplayName: "first"},
		Persona{ID: "X", DisplayName: "second"},
	)
	p, err := r.For("x")
	require.NoError(t, err)
	assert.Equal(t, "second", p.DisplayName)
	assert.Len(t, r.List(), 1)
}

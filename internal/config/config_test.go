package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubLoader returns a canned plan per file name.
type stubLoader struct {
	plans map[string]*Plan
	err   error
}

func (s *stubLoader) Load(_ context.Context, path string) (*Plan, error) {
	if s.err != nil {
		return nil, s.err
	}
	p := s.plans[filepath.Base(path)]
	if p == nil {
		p = &Plan{}
	}
	p.Sources = []string{path}
	return p, nil
}

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o600))
	}
}

func TestPlanMerge(t *testing.T) {
	base := &Plan{
		Grid:        &GridSource{Path: "a.txt"},
		Simulations: []*Simulation{{Name: "one", Entry: Literal("left[0]")}},
	}
	err := base.Merge(&Plan{
		Simulations: []*Simulation{{Name: "two", Entry: Literal("top[0]")}},
		Scan:        &Scan{Top: 1},
		Sources:     []string{"b.hcl"},
	})
	require.NoError(t, err)
	assert.Len(t, base.Simulations, 2)
	assert.Equal(t, 1, base.Scan.Top)
	assert.Equal(t, []string{"b.hcl"}, base.Sources)

	testCases := []struct {
		name  string
		other *Plan
		want  string
	}{
		{name: "grid", other: &Plan{Grid: &GridSource{Path: "b.txt"}}, want: "grid block"},
		{name: "scan", other: &Plan{Scan: &Scan{}}, want: "scan block"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := base.Merge(tc.other)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}

	withPublish := &Plan{Publish: &Publish{URL: "http://a"}}
	err = withPublish.Merge(&Plan{Publish: &Publish{URL: "http://b"}})
	assert.ErrorContains(t, err, "publish block")
}

func TestPlanValidate(t *testing.T) {
	testCases := []struct {
		name    string
		plan    Plan
		wantErr string
	}{
		{
			name: "valid",
			plan: Plan{
				Grid:        &GridSource{Rows: []string{".."}},
				Simulations: []*Simulation{{Name: "a", Entry: Literal("left[0]")}},
				Scan:        &Scan{Workers: 2},
				Publish:     &Publish{URL: "http://localhost:3000/socket.io/"},
			},
		},
		{name: "empty plan is valid", plan: Plan{}},
		{
			name:    "grid with both sources",
			plan:    Plan{Grid: &GridSource{Path: "a", Rows: []string{"."}}},
			wantErr: "exactly one of path or rows",
		},
		{
			name:    "grid with no source",
			plan:    Plan{Grid: &GridSource{}},
			wantErr: "exactly one of path or rows",
		},
		{
			name:    "unnamed simulation",
			plan:    Plan{Simulations: []*Simulation{{Entry: Literal("left[0]")}}},
			wantErr: "simulation 0 has no name",
		},
		{
			name: "duplicate simulation",
			plan: Plan{Simulations: []*Simulation{
				{Name: "a", Entry: Literal("left[0]")},
				{Name: "a", Entry: Literal("top[0]")},
			}},
			wantErr: `simulation "a" defined more than once`,
		},
		{
			name:    "negative workers",
			plan:    Plan{Scan: &Scan{Workers: -1}},
			wantErr: "scan",
		},
		{
			name:    "publish without url",
			plan:    Plan{Publish: &Publish{}},
			wantErr: "publish",
		},
		{
			name:    "publish with bad url",
			plan:    Plan{Publish: &Publish{URL: "not a url"}},
			wantErr: "publish",
		},
		{
			name:    "negative timeout",
			plan:    Plan{Publish: &Publish{URL: "http://x", Timeout: -time.Second}},
			wantErr: "publish",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.plan.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestPublishWithDefaults(t *testing.T) {
	got := Publish{URL: "http://x"}.WithDefaults()
	assert.Equal(t, Publish{
		URL:       "http://x",
		Namespace: DefaultPublishNamespace,
		Event:     DefaultPublishEvent,
		Timeout:   DefaultPublishTimeout,
	}, got)

	custom := Publish{URL: "http://x", Namespace: "/n", Event: "e", Timeout: time.Second}
	assert.Equal(t, custom, custom.WithDefaults())
}

func TestLiteral(t *testing.T) {
	got, err := Literal("top[3]").Evaluate(GridDims{Width: 1, Height: 1})
	require.NoError(t, err)
	assert.Equal(t, "top[3]", got)
}

func TestLoadersLoad(t *testing.T) {
	t.Run("merges files in lexical order", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, dir, "b.stub", "a.stub", "c.other")
		stub := &stubLoader{plans: map[string]*Plan{
			"a.stub": {Grid: &GridSource{Rows: []string{"."}}},
			"b.stub": {Simulations: []*Simulation{{Name: "s", Entry: Literal("left[0]")}}},
		}}

		plan, err := Loaders{".stub": stub}.Load(context.Background(), dir)
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(dir, "a.stub"), filepath.Join(dir, "b.stub")}, plan.Sources)
		assert.NotNil(t, plan.Grid)
		assert.Len(t, plan.Simulations, 1)
	})

	t.Run("no plan files", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, dir, "readme.md")
		_, err := Loaders{".stub": &stubLoader{}}.Load(context.Background(), dir)
		assert.ErrorContains(t, err, "no plan files")
	})

	t.Run("loader error is returned", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, dir, "a.stub")
		boom := errors.New("boom")
		_, err := Loaders{".stub": &stubLoader{err: boom}}.Load(context.Background(), dir)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("validation runs after merge", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, dir, "a.stub")
		stub := &stubLoader{plans: map[string]*Plan{"a.stub": {Grid: &GridSource{}}}}
		_, err := Loaders{".stub": stub}.Load(context.Background(), dir)
		assert.ErrorContains(t, err, "invalid plan")
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := Loaders{".stub": &stubLoader{}}.Load(context.Background(), filepath.Join(t.TempDir(), "nope"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	assert.Equal(t, []string{".hcl", ".yaml", ".yml"}, Loaders{".yml": nil, ".hcl": nil, ".yaml": nil}.Extensions())
}

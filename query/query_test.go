package query

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/pokedex/pokeapi"
	"github.com/s0up4200/pokedex/pokeapi/pokeapitest"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		name        string
		expression  string
		wantErr     bool
		errContains string
	}{
		{
			name:       "valid expression",
			expression: `contains(Name, "saur")`,
		},
		{
			name:        "empty expression",
			expression:  "   ",
			wantErr:     true,
			errContains: "empty expression",
		},
		{
			name:       "invalid syntax",
			expression: `contains(Name, "unclosed`,
			wantErr:    true,
		},
		{
			name:        "unknown field",
			expression:  `Weight > 10`,
			wantErr:     true,
			errContains: "Weight",
		},
		{
			name:       "non boolean result",
			expression: `ID + 1`,
			wantErr:    true,
		},
		{
			name:       "complex expression",
			expression: `ID <= 151 and (startsWith(Name, "char") or endsWith(Name, "chu"))`,
		},
	}

	compiler := NewCompiler()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := compiler.Compile(tt.expression)

			if tt.wantErr {
				require.Error(t, err)
				var compErr *CompilationError
				require.True(t, errors.As(err, &compErr))
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expression, q.Expression())
		})
	}
}

func TestCompilationError(t *testing.T) {
	err := &CompilationError{Expression: "x >", Reason: "unexpected token", Position: 3}
	assert.Equal(t, "compilation error at position 3 in 'x >': unexpected token", err.Error())

	inner := errors.New("inner")
	err = &CompilationError{Expression: "", Reason: "empty expression", Position: -1, Err: inner}
	assert.Equal(t, "compilation error in '': empty expression", err.Error())
	assert.ErrorIs(t, err, inner)
}

func TestMatch(t *testing.T) {
	pikachu := pokeapi.PokemonSummary{Name: "pikachu", URL: "https://pokeapi.co/api/v2/pokemon/25/"}

	tests := []struct {
		expression string
		want       bool
	}{
		{`Name == "pikachu"`, true},
		{`ID == 25`, true},
		{`ID > 151`, false},
		{`contains(Name, "KAC")`, true},
		{`startsWith(Name, "Pi") and endsWith(Name, "CHU")`, true},
		{`upper(Name) == "PIKACHU"`, true},
		{`lower("PIKA") == "pika"`, true},
		{`contains(URL, "/pokemon/25/")`, true},
		{`int(Name) > 0`, false},
	}

	compiler := NewCompiler()
	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			q, err := compiler.Compile(tt.expression)
			require.NoError(t, err)
			assert.Equal(t, tt.want, q.Match(pikachu))
		})
	}
}

func TestWithFunctions(t *testing.T) {
	compiler := NewCompiler(WithFunctions(map[string]any{
		"isStarter": func(id int) bool {
			return id == 1 || id == 4 || id == 7
		},
	}))

	q, err := compiler.Compile(`isStarter(ID)`)
	require.NoError(t, err)

	assert.True(t, q.Match(pokeapi.PokemonSummary{Name: "charmander", URL: "https://pokeapi.co/api/v2/pokemon/4/"}))
	assert.False(t, q.Match(pokeapi.PokemonSummary{Name: "charmeleon", URL: "https://pokeapi.co/api/v2/pokemon/5/"}))
}

func TestCompilerCache(t *testing.T) {
	compiler := NewCompiler(WithCache(2))

	first, err := compiler.Compile(`ID == 1`)
	require.NoError(t, err)
	again, err := compiler.Compile(` ID == 1 `)
	require.NoError(t, err)
	assert.Same(t, first, again)
	assert.Equal(t, 1, compiler.CacheSize())

	_, err = compiler.Compile(`ID == 2`)
	require.NoError(t, err)
	_, err = compiler.Compile(`ID == 3`)
	require.NoError(t, err)
	assert.Equal(t, 2, compiler.CacheSize())

	// ID == 1 was evicted
	evicted, err := compiler.Compile(`ID == 1`)
	require.NoError(t, err)
	assert.NotSame(t, first, evicted)

	compiler.Clear()
	assert.Zero(t, compiler.CacheSize())

	assert.Zero(t, NewCompiler().CacheSize())
}

func TestLRUCache(t *testing.T) {
	cache := newLRUCache[int](2)

	cache.Put("a", 1)
	cache.Put("b", 2)

	v, ok := cache.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	// "b" is now least recently used
	cache.Put("c", 3)
	_, ok = cache.Get("b")
	assert.False(t, ok)

	cache.Put("a", 10)
	v, _ = cache.Get("a")
	assert.Equal(t, 10, v)
	assert.Equal(t, 2, cache.Len())
}

func TestFilter(t *testing.T) {
	compiler := NewCompiler()
	q, err := compiler.Compile(`ID % 2 == 0`)
	require.NoError(t, err)

	t.Run("small list", func(t *testing.T) {
		got, err := q.Filter(context.Background(), pokeapitest.Page(0, 10))
		require.NoError(t, err)
		require.Len(t, got, 5)
		assert.Equal(t, "pokemon-2", got[0].Name)
		assert.Equal(t, "pokemon-10", got[4].Name)
	})

	t.Run("large list keeps order", func(t *testing.T) {
		items := pokeapitest.Page(0, 1302)
		got, err := q.Filter(context.Background(), items)
		require.NoError(t, err)
		require.Len(t, got, 651)
		for i, p := range got {
			assert.Equal(t, (i+1)*2, p.ID())
		}
	})

	t.Run("empty list", func(t *testing.T) {
		got, err := q.Filter(context.Background(), nil)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := q.Filter(ctx, pokeapitest.Page(0, 2000))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

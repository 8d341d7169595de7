package factory

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cecil-the-coder/razorpad-kit/internal/testutil"
	"github.com/cecil-the-coder/razorpad-kit/pkg/logging"
	"github.com/cecil-the-coder/razorpad-kit/pkg/providers/jsonmodel"
	"github.com/cecil-the-coder/razorpad-kit/pkg/providers/xmlmodel"
	"github.com/cecil-the-coder/razorpad-kit/pkg/providers/yamlmodel"
	"github.com/cecil-the-coder/razorpad-kit/pkg/types"
)

func TestNew(t *testing.T) {
	r, err := New([]types.ModelProviderFactory{jsonmodel.NewFactory(), xmlmodel.NewFactory()})
	require.NoError(t, err)
	assert.Equal(t, []string{"json", "xml"}, r.Names())
	assert.Equal(t, 2, r.Len())
}

func TestNew_NilFactories(t *testing.T) {
	r, err := New(nil)
	assert.Nil(t, r)
	assert.True(t, errors.Is(err, types.ErrNilFactories))

	assert.Panics(t, func() { MustNew(nil) })
}

func TestNew_EmptyFactories(t *testing.T) {
	r, err := New([]types.ModelProviderFactory{})
	require.NoError(t, err)
	assert.Empty(t, r.Providers())
	assert.Empty(t, r.Names())
}

func TestNew_DuplicatesKeepFirst(t *testing.T) {
	first := &jsonmodel.JSONModelProviderFactory{JSON: `{"n":1}`}
	second := &jsonmodel.JSONModelProviderFactory{JSON: `{"n":2}`}

	r := MustNew([]types.ModelProviderFactory{first, second})

	require.Len(t, r.Providers(), 1)
	assert.Same(t, first, r.GetProviderFactory("json"))
}

func TestModelProviders_Add(t *testing.T) {
	rec := logging.NewRecorder()
	r := MustNew([]types.ModelProviderFactory{}, WithLogger(rec))

	assert.True(t, r.Add(testutil.NewMockFactory("OrdersModelProviderFactory", nil)))
	assert.False(t, r.Add(testutil.NewMockFactory("ORDERSFactory", nil)))
	assert.False(t, r.Add(nil))

	assert.Equal(t, []string{"orders"}, r.Names())

	info := rec.ByLevel(logging.LevelInfo)
	require.Len(t, info, 1)
	assert.Equal(t, "orders", info[0].Fields["key"])
	assert.Equal(t, "OrdersModelProviderFactory", info[0].Fields["type"])

	debug := rec.ByLevel(logging.LevelDebug)
	require.Len(t, debug, 1)
	assert.Equal(t, "ORDERSFactory", debug[0].Fields["type"])

	assert.Len(t, rec.ByLevel(logging.LevelWarn), 1)
}

func TestModelProviders_Add_TypedNil(t *testing.T) {
	rec := logging.NewRecorder()
	r := MustNew([]types.ModelProviderFactory{
		(*jsonmodel.JSONModelProviderFactory)(nil),
		(*testutil.MockFactory)(nil),
	}, WithLogger(rec))

	assert.Empty(t, r.Names())
	require.Len(t, rec.ByLevel(logging.LevelWarn), 2)
	assert.Equal(t, "*jsonmodel.JSONModelProviderFactory", rec.ByLevel(logging.LevelWarn)[0].Fields["type"])

	// The key stays free for a real factory.
	jsonFactory := &jsonmodel.JSONModelProviderFactory{JSON: `{"ok":true}`}
	assert.True(t, r.Add(jsonFactory))
	assert.Same(t, jsonFactory, r.GetProviderFactory("json"))

	model, err := r.Create("json").GetModel()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"ok": true}, model)
}

func TestModelProviders_Add_ConcurrentSameKey(t *testing.T) {
	r := MustNew([]types.ModelProviderFactory{})

	const n = 100
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		inserted int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("Shared%s", []string{"Factory", "ProviderFactory", "ModelProviderFactory"}[i%3])
			if r.Add(testutil.NewMockFactory(name, i)) {
				mu.Lock()
				inserted++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, inserted)
	assert.Equal(t, []string{"shared"}, r.Names())
}

func TestModelProviders_Add_ConcurrentDistinctKeys(t *testing.T) {
	r := MustNew([]types.ModelProviderFactory{})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r.Add(testutil.NewMockFactory(fmt.Sprintf("Source%dFactory", i), i))
			_ = r.Create(fmt.Sprintf("source%d", i))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, r.Len())
}

func TestModelProviders_Create(t *testing.T) {
	rec := logging.NewRecorder()
	orders := testutil.NewMockFactory("OrdersFactory", map[string]any{"total": 3})
	r := MustNew([]types.ModelProviderFactory{orders}, WithLogger(rec))

	for _, name := range []string{"orders", "Orders", "ORDERS"} {
		provider := r.Create(name)
		require.NotNil(t, provider)
		model, err := provider.GetModel()
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"total": 3}, model)
	}

	assert.Equal(t, 3, orders.CreateCallCount())
	assert.Len(t, rec.ByLevel(logging.LevelDebug), 3)
	assert.Empty(t, rec.ByLevel(logging.LevelWarn))
}

func TestModelProviders_Create_FreshProviders(t *testing.T) {
	r := MustNew([]types.ModelProviderFactory{jsonmodel.NewFactory()})

	a := r.Create("json")
	b := r.Create("json")
	assert.NotSame(t, a, b)
}

func TestModelProviders_Create_NotTrimmed(t *testing.T) {
	fallback := testutil.NewMockFactory("FallbackFactory", "fallback")
	r := MustNew([]types.ModelProviderFactory{jsonmodel.NewFactory()}, WithDefaultFactory(fallback))

	model, err := r.Create("JsonFactory").GetModel()
	require.NoError(t, err)
	assert.Equal(t, "fallback", model)
	assert.Nil(t, r.GetProviderFactory("JsonFactory"))
}

func TestModelProviders_Create_FallsBackToDefault(t *testing.T) {
	t.Cleanup(func() { SetDefaultFactory(nil) })
	SetDefaultFactory(nil)

	rec := logging.NewRecorder()
	r := MustNew([]types.ModelProviderFactory{}, WithLogger(rec))

	provider := r.Create("missing")
	require.NotNil(t, provider)
	assert.IsType(t, &jsonmodel.ModelProvider{}, provider)

	model, err := provider.GetModel()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{}, model)

	warn := rec.ByLevel(logging.LevelWarn)
	require.Len(t, warn, 1)
	assert.Equal(t, "missing", warn[0].Fields["name"])
}

func TestModelProviders_Create_DefaultOverride(t *testing.T) {
	t.Cleanup(func() { SetDefaultFactory(nil) })

	global := testutil.NewMockFactory("GlobalFactory", "global")
	SetDefaultFactory(global)

	r := MustNew([]types.ModelProviderFactory{})
	model, err := r.Create("anything").GetModel()
	require.NoError(t, err)
	assert.Equal(t, "global", model)
	assert.Same(t, global, r.Default())

	local := testutil.NewMockFactory("LocalFactory", "local")
	scoped := MustNew([]types.ModelProviderFactory{}, WithDefaultFactory(local))
	model, err = scoped.Create("anything").GetModel()
	require.NoError(t, err)
	assert.Equal(t, "local", model)
	assert.Equal(t, 1, global.CreateCallCount())
}

func TestModelProviders_GetProviderFactory(t *testing.T) {
	rec := logging.NewRecorder()
	xml := xmlmodel.NewFactory()
	r := MustNew([]types.ModelProviderFactory{xml}, WithLogger(rec))
	rec.Reset()

	assert.Same(t, xml, r.GetProviderFactory("XML"))
	assert.Nil(t, r.GetProviderFactory("yaml"))
	assert.True(t, r.Has("xml"))
	assert.False(t, r.Has("yaml"))
	assert.Empty(t, rec.Entries())
}

func TestModelProviders_Providers(t *testing.T) {
	y := yamlmodel.NewFactory()
	j := jsonmodel.NewFactory()
	r := MustNew([]types.ModelProviderFactory{y, j})

	entries := r.Providers()
	require.Len(t, entries, 2)
	assert.Equal(t, Entry{Key: "yaml", TypeName: "YAMLModelProviderFactory", Factory: y}, entries[0])
	assert.Equal(t, Entry{Key: "json", TypeName: "JSONModelProviderFactory", Factory: j}, entries[1])

	// Mutating the snapshot leaves the registry alone.
	entries[0] = Entry{}
	assert.Equal(t, "yaml", r.Providers()[0].Key)
}

func TestModelProviders_WithFactorySuffixes(t *testing.T) {
	r := MustNew([]types.ModelProviderFactory{
		testutil.NewMockFactory("OrdersSource", nil),
		testutil.NewMockFactory("InventoryFactory", nil),
	}, WithFactorySuffixes("Source"))

	assert.Equal(t, []string{"orders", "inventoryfactory"}, r.Names())
}

func TestModelProviders_ErrorsPassThrough(t *testing.T) {
	failure := errors.New("boom")
	f := testutil.NewMockFactoryFunc("BrokenFactory", func() types.ModelProvider {
		p := testutil.NewConfigurableMockProvider(nil)
		p.SetError(failure)
		return p
	})
	r := MustNew([]types.ModelProviderFactory{f})

	_, err := r.Create("broken").GetModel()
	assert.Same(t, failure, err)
}

func TestModelProviders_DedupProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		bases := rapid.SliceOf(rapid.SampledFrom([]string{"Orders", "orders", "ORDERS", "Stock", "Users"})).Draw(t, "bases")
		suffixes := rapid.SliceOfN(rapid.SampledFrom(append(DefaultFactorySuffixes(), "")), len(bases), len(bases)).Draw(t, "suffixes")

		factories := make([]types.ModelProviderFactory, len(bases))
		firstByKey := map[string]types.ModelProviderFactory{}
		var order []string
		for i, base := range bases {
			f := testutil.NewMockFactory(base+suffixes[i], i)
			factories[i] = f
			key := RegistryKey(base + suffixes[i])
			if _, ok := firstByKey[key]; !ok {
				firstByKey[key] = f
				order = append(order, key)
			}
		}

		r := MustNew(factories)
		names := r.Names()
		if len(names) != len(order) {
			t.Fatalf("got %d keys, want %d", len(names), len(order))
		}
		for i, key := range order {
			if names[i] != key {
				t.Fatalf("key %d = %q, want %q", i, names[i], key)
			}
			if r.GetProviderFactory(key) != firstByKey[key] {
				t.Fatalf("key %q does not hold the first registered factory", key)
			}
		}
	})
}

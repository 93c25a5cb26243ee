package breeds

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/breedbox/internal/cache/memory"
	"github.com/dropDatabas3/breedbox/internal/dogapi"
)

// fakeUpstream cuenta llamadas; los func permiten programar cada respuesta.
type fakeUpstream struct {
	listCalls   atomic.Int32
	imagesCalls atomic.Int32

	listFn   func(ctx context.Context) (map[string][]string, error)
	imagesFn func(ctx context.Context, breed string, n int) ([]string, error)
}

func (f *fakeUpstream) ListAllBreeds(ctx context.Context) (map[string][]string, error) {
	f.listCalls.Add(1)
	return f.listFn(ctx)
}

func (f *fakeUpstream) RandomImages(ctx context.Context, breed string, n int) ([]string, error) {
	f.imagesCalls.Add(1)
	return f.imagesFn(ctx, breed, n)
}

func okList(context.Context) (map[string][]string, error) {
	return map[string][]string{
		"hound":   {"afghan", "basset"},
		"beagle":  {},
		"bulldog": {"boston", "french"},
	}, nil
}

func okImages(_ context.Context, breed string, n int) ([]string, error) {
	out := make([]string, n)
	for i := range out {
		out[i] = "https://images.dog.ceo/breeds/" + breed + "/" + string(rune('a'+i)) + ".jpg"
	}
	return out, nil
}

func TestGetAllBreeds_MissThenHit(t *testing.T) {
	up := &fakeUpstream{listFn: okList}
	c := memory.New(0)
	g := NewGateway(up, c, Config{})

	got, err := g.GetAllBreeds(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"beagle", "bulldog", "hound"}, got)
	require.EqualValues(t, 1, up.listCalls.Load())

	// hit: ninguna llamada nueva al upstream
	got, err = g.GetAllBreeds(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"beagle", "bulldog", "hound"}, got)
	require.EqualValues(t, 1, up.listCalls.Load())

	_, ok := c.Get(BreedsCacheKey)
	require.True(t, ok)
}

func TestGetAllBreeds_PrePopulatedCacheNeverCallsUpstream(t *testing.T) {
	up := &fakeUpstream{listFn: func(context.Context) (map[string][]string, error) {
		t.Fatal("upstream must not be called on a cache hit")
		return nil, nil
	}}
	c := memory.New(0)
	c.Set(BreedsCacheKey, []byte(`["akita"]`), time.Minute)

	got, err := NewGateway(up, c, Config{}).GetAllBreeds(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"akita"}, got)
	require.EqualValues(t, 0, up.listCalls.Load())
}

func TestGetAllBreeds_RefetchesAfterTTL(t *testing.T) {
	up := &fakeUpstream{listFn: okList}
	g := NewGateway(up, memory.New(time.Hour), Config{BreedsTTL: 40 * time.Millisecond})

	_, err := g.GetAllBreeds(context.Background())
	require.NoError(t, err)
	time.Sleep(100 * time.Millisecond)
	_, err = g.GetAllBreeds(context.Background())
	require.NoError(t, err)

	require.EqualValues(t, 2, up.listCalls.Load())
}

func TestGetAllBreeds_AnyUpstreamFailureIsServiceUnavailable(t *testing.T) {
	failures := []error{
		errors.New("dial tcp: connection refused"),
		&dogapi.HTTPError{StatusCode: http.StatusInternalServerError},
		&dogapi.HTTPError{StatusCode: http.StatusNotFound},
		dogapi.ErrMalformedResponse,
	}
	for _, failure := range failures {
		up := &fakeUpstream{listFn: func(context.Context) (map[string][]string, error) { return nil, failure }}
		c := memory.New(0)

		_, err := NewGateway(up, c, Config{}).GetAllBreeds(context.Background())
		require.ErrorIs(t, err, ErrServiceUnavailable)
		require.NotErrorIs(t, err, ErrBreedNotFound)

		// nada se cachea en una falla
		_, ok := c.Get(BreedsCacheKey)
		require.False(t, ok)
	}
}

func TestGetBreedImages_CachesPerBreedAndQuantity(t *testing.T) {
	up := &fakeUpstream{imagesFn: okImages}
	c := memory.New(0)
	g := NewGateway(up, c, Config{})
	ctx := context.Background()

	first, err := g.GetBreedImages(ctx, "hound", 3)
	require.NoError(t, err)
	require.Len(t, first, 3)

	again, err := g.GetBreedImages(ctx, "hound", 3)
	require.NoError(t, err)
	require.Equal(t, first, again)
	require.EqualValues(t, 1, up.imagesCalls.Load())

	// otra cantidad y otra capitalización son otras keys
	_, err = g.GetBreedImages(ctx, "hound", 2)
	require.NoError(t, err)
	_, err = g.GetBreedImages(ctx, "Hound", 3)
	require.NoError(t, err)
	require.EqualValues(t, 3, up.imagesCalls.Load())

	_, ok := c.Get("breed_images_hound_3")
	require.True(t, ok)
	_, ok = c.Get("breed_images_Hound_3")
	require.True(t, ok)
}

func TestGetBreedImages_NotFound(t *testing.T) {
	up := &fakeUpstream{imagesFn: func(context.Context, string, int) ([]string, error) {
		return nil, &dogapi.HTTPError{StatusCode: http.StatusNotFound}
	}}
	g := NewGateway(up, memory.New(0), Config{})

	_, err := g.GetBreedImages(context.Background(), "invalidbreed", 3)
	require.ErrorIs(t, err, ErrBreedNotFound)
	require.NotErrorIs(t, err, ErrServiceUnavailable)

	var nf *BreedNotFoundError
	require.True(t, errors.As(err, &nf))
	require.Equal(t, "invalidbreed", nf.Breed)
	require.Equal(t, "Breed 'invalidbreed' not found", nf.Error())
}

func TestGetBreedImages_OtherFailuresAreServiceUnavailable(t *testing.T) {
	failures := []error{
		&dogapi.HTTPError{StatusCode: http.StatusServiceUnavailable},
		&dogapi.HTTPError{StatusCode: http.StatusBadRequest},
		context.DeadlineExceeded,
		dogapi.ErrMalformedResponse,
	}
	for _, failure := range failures {
		up := &fakeUpstream{imagesFn: func(context.Context, string, int) ([]string, error) { return nil, failure }}
		_, err := NewGateway(up, memory.New(0), Config{}).GetBreedImages(context.Background(), "hound", 1)
		require.ErrorIs(t, err, ErrServiceUnavailable)
		require.NotErrorIs(t, err, ErrBreedNotFound)
	}
}

// Sin coalescing: misses simultáneos pueden pegarle varias veces al upstream.
// Lo único que se exige es que todos terminen bien con el mismo resultado.
func TestGetAllBreeds_ConcurrentMissesAreTolerated(t *testing.T) {
	const callers = 8
	release := make(chan struct{})
	up := &fakeUpstream{listFn: func(ctx context.Context) (map[string][]string, error) {
		<-release
		return okList(ctx)
	}}
	g := NewGateway(up, memory.New(0), Config{})

	var wg sync.WaitGroup
	results := make([][]string, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = g.GetAllBreeds(context.Background())
		}(i)
	}

	// dejar que todos lleguen al miss antes de liberar el upstream
	require.Eventually(t, func() bool { return up.listCalls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	close(release)
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		require.Equal(t, []string{"beagle", "bulldog", "hound"}, results[i])
	}
	calls := up.listCalls.Load()
	require.GreaterOrEqual(t, calls, int32(2))
	require.LessOrEqual(t, calls, int32(callers))
}

func TestImagesCacheKey(t *testing.T) {
	require.Equal(t, "breed_images_hound_3", ImagesCacheKey("hound", 3))
	require.Equal(t, "breed_images_ Hound _10", ImagesCacheKey(" Hound ", 10))
}

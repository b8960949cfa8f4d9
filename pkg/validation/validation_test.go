package validation

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderSuccess(t *testing.T) {
	t.Run("empty builder is successful", func(t *testing.T) {
		b := NewBuilder()
		assert.True(t, b.IsSuccessful())
		assert.True(t, b.Build().IsSuccessful())
		assert.True(t, b.Build().IsEmpty())
	})

	t.Run("warnings keep the result successful", func(t *testing.T) {
		var b Builder
		b.AddWarning("late", "submitted late")
		b.AddInfo("note", "fyi")
		assert.True(t, b.IsSuccessful())
		assert.False(t, b.Build().IsEmpty())
	})

	t.Run("a single error fails the result", func(t *testing.T) {
		b := NewBuilder()
		b.AddWarning("late", "submitted late")
		b.AddError("country_required", "country is required")
		assert.False(t, b.IsSuccessful())

		res := b.Build()
		assert.False(t, res.IsSuccessful())
		assert.True(t, res.HasCode("country_required"))
		require.Len(t, res.Errors(), 1)
		assert.Equal(t, "country is required", res.Error())
	})
}

func TestBuildIsSnapshot(t *testing.T) {
	b := NewBuilder()
	b.AddInfo("first", "first")
	res := b.Build()

	b.AddError("second", "second")

	assert.Len(t, res.Entries(), 1)
	assert.True(t, res.IsSuccessful())
	assert.False(t, b.Build().IsSuccessful())
}

func TestAppend(t *testing.T) {
	b := NewBuilder()
	b.Append(nil)
	b.Append(Failure("department_not_found", "no department"))
	b.Append(Success())

	assert.Equal(t, 1, b.Len())
	assert.False(t, b.IsSuccessful())
}

func TestNilResult(t *testing.T) {
	var r *Result
	assert.True(t, r.IsSuccessful())
	assert.True(t, r.IsEmpty())
	assert.Nil(t, r.Entries())
	assert.False(t, r.HasCode("x"))
}

func TestConcurrentAppends(t *testing.T) {
	b := NewBuilder()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.AddError("e", "e")
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, b.Len())
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "info", SeverityInfo.String())
	assert.Equal(t, "unknown", Severity(42).String())
}

package tasks_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todoctl/internal/service"
	"todoctl/internal/tasks"
)

func sampleList() []service.Task {
	return []service.Task{
		{ID: "t1", Text: "one", IsComplete: false},
		{ID: "t2", Text: "two", IsComplete: true},
		{ID: "t3", Text: "three", IsComplete: false},
		{ID: "t4", Text: "four", IsComplete: true},
	}
}

func TestApplyPreservesOrder(t *testing.T) {
	list := sampleList()

	all := tasks.Apply(list, tasks.FilterAll)
	require.Len(t, all, 4)
	assert.Equal(t, "t1", all[0].ID)

	active := tasks.Apply(list, tasks.FilterActive)
	require.Len(t, active, 2)
	assert.Equal(t, "t1", active[0].ID)
	assert.Equal(t, "t3", active[1].ID)

	completed := tasks.Apply(list, tasks.FilterCompleted)
	require.Len(t, completed, 2)
	assert.Equal(t, "t2", completed[0].ID)
	assert.Equal(t, "t4", completed[1].ID)
}

func TestApplyEmptyList(t *testing.T) {
	assert.Empty(t, tasks.Apply(nil, tasks.FilterActive))
}

func TestCount(t *testing.T) {
	c := tasks.Count(sampleList())
	assert.Equal(t, 4, c.Total)
	assert.Equal(t, 2, c.Completed)
	assert.Equal(t, 2, c.Remaining)
}

func TestProgress(t *testing.T) {
	assert.InDelta(t, 50.0, tasks.Count(sampleList()).Progress(), 0.001)
	assert.Zero(t, tasks.Counts{}.Progress(), "empty list is 0, not NaN")
	full := tasks.Counts{Total: 3, Completed: 3}
	assert.InDelta(t, 100.0, full.Progress(), 0.001)
}

func TestFilterNextCycles(t *testing.T) {
	f := tasks.FilterAll
	f = f.Next()
	assert.Equal(t, tasks.FilterActive, f)
	f = f.Next()
	assert.Equal(t, tasks.FilterCompleted, f)
	f = f.Next()
	assert.Equal(t, tasks.FilterAll, f)
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		in      string
		want    tasks.Filter
		wantErr bool
	}{
		{"", tasks.FilterAll, false},
		{"all", tasks.FilterAll, false},
		{"active", tasks.FilterActive, false},
		{"completed", tasks.FilterCompleted, false},
		{"done", 0, true},
	}
	for _, tt := range tests {
		got, err := tasks.ParseFilter(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

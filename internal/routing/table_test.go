package routing

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupAfterInstall(t *testing.T) {
	tbl := New()
	tbl.Install("alpha", 51515)

	port, ok := tbl.Lookup("alpha")
	assert.True(t, ok)
	assert.Equal(t, 51515, port)
}

func TestLookupAfterRemove(t *testing.T) {
	tbl := New()
	tbl.Install("alpha", 51515)
	tbl.Remove("alpha")

	_, ok := tbl.Lookup("alpha")
	assert.False(t, ok)
}

func TestInstallOverwritesPriorEntry(t *testing.T) {
	tbl := New()
	tbl.Install("alpha", 51515)
	tbl.Install("alpha", 51616)

	port, ok := tbl.Lookup("alpha")
	assert.True(t, ok)
	assert.Equal(t, 51616, port)
}

func TestLookupMissingProject(t *testing.T) {
	tbl := New()
	_, ok := tbl.Lookup("missing")
	assert.False(t, ok)
}

func TestSnapshotReflectsInstalledRoutes(t *testing.T) {
	tbl := New()
	tbl.Install("alpha", 51515)
	tbl.Install("beta", 51616)

	snap := tbl.Snapshot()
	assert.Len(t, snap, 2)

	byName := make(map[string]int)
	for _, r := range snap {
		byName[r.Name] = r.Port
	}
	assert.Equal(t, 51515, byName["alpha"])
	assert.Equal(t, 51616, byName["beta"])
}

func TestConcurrentReadersAndWriter(t *testing.T) {
	tbl := New()
	tbl.Install("alpha", 51515)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tbl.Lookup("alpha")
		}()
	}
	tbl.Install("alpha", 51616)
	wg.Wait()

	port, ok := tbl.Lookup("alpha")
	assert.True(t, ok)
	assert.Equal(t, 51616, port)
}

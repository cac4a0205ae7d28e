// SPDX-License-Identifier: AGPL-3.0-or-later

package mutation

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	geotest "github.com/kraklabs/geotree/internal/testing"
	"github.com/kraklabs/geotree/pkg/catalog"
	"github.com/kraklabs/geotree/pkg/ingestion"
	"github.com/kraklabs/geotree/pkg/storage"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func load(t *testing.T, root string) *catalog.Collection {
	t.Helper()
	res := ingestion.NewLoader(storage.NewCSV(quiet), quiet, ingestion.Options{}).Load(root, catalog.DefaultSchema)
	require.Empty(t, res.Diagnostics)
	return catalog.NewCollection(res.Records)
}

func newCoordinator(root string, coll *catalog.Collection, store LeafStore) *Coordinator {
	return &Coordinator{
		Collection: coll,
		Store:      store,
		Root:       root,
		Schema:     catalog.DefaultSchema,
		Logger:     quiet,
	}
}

// failingStore rejects every write.
type failingStore struct{ err error }

func (f failingStore) Rewrite(string, []*catalog.Record) error { return f.err }
func (f failingStore) Append(string, *catalog.Record) error    { return f.err }

func TestUpdate_PersistsAndReloads(t *testing.T) {
	root := geotest.SampleTree(t)
	coll := load(t, root)
	coord := newCoordinator(root, coll, storage.NewCSV(quiet))

	chile, err := coll.Resolve("chile")
	require.NoError(t, err)
	require.NoError(t, coord.Update(chile, catalog.SetPopulation(20000000)))

	assert.Equal(t, int64(20000000), chile.Population)

	reloaded := load(t, root)
	again, err := reloaded.Resolve("Chile")
	require.NoError(t, err)
	assert.Equal(t, int64(20000000), again.Population)
	assert.Equal(t, chile.Hierarchy, again.Hierarchy)
	assert.Equal(t, geotest.SampleRecordCount, reloaded.Len())

	assert.Equal(t, []string{
		geotest.LeafHeader,
		"Argentina,45000000,2780400",
		"Chile,20000000,756102",
		"Peru,33000000,1285216",
	}, geotest.ReadLines(t, chile.Source))
}

func TestUpdate_Rename(t *testing.T) {
	root := geotest.SampleTree(t)
	coll := load(t, root)
	coord := newCoordinator(root, coll, storage.NewCSV(quiet))

	mexico, err := coll.Resolve("mexico")
	require.NoError(t, err)
	require.NoError(t, coord.Update(mexico, catalog.SetName("México")))

	_, err = load(t, root).Resolve("MÉXICO")
	assert.NoError(t, err)
}

func TestUpdate_InvalidChangeLeavesFileAlone(t *testing.T) {
	root := geotest.SampleTree(t)
	coll := load(t, root)
	coord := newCoordinator(root, coll, failingStore{err: errors.New("must not be called")})

	chile, err := coll.Resolve("chile")
	require.NoError(t, err)

	err = coord.Update(chile, catalog.SetArea(-1))
	assert.ErrorIs(t, err, catalog.ErrInvalidValue)
	assert.InDelta(t, 756102.0, chile.Area, 1e-9)
}

func TestUpdate_UnknownRecord(t *testing.T) {
	root := geotest.SampleTree(t)
	coord := newCoordinator(root, load(t, root), storage.NewCSV(quiet))

	stray := &catalog.Record{Name: "Chile", Population: 1, Area: 1}
	assert.ErrorIs(t, coord.Update(stray, catalog.SetPopulation(2)), catalog.ErrNotFound)
	assert.ErrorIs(t, coord.Delete(stray), catalog.ErrNotFound)
}

func TestUpdate_FailedRewriteDiverges(t *testing.T) {
	root := geotest.SampleTree(t)
	coll := load(t, root)
	diskErr := errors.New("disk full")
	coord := newCoordinator(root, coll, failingStore{err: diskErr})

	chile, err := coll.Resolve("chile")
	require.NoError(t, err)

	err = coord.Update(chile, catalog.SetPopulation(1))
	assert.ErrorIs(t, err, catalog.ErrDiverged)
	assert.ErrorIs(t, err, diskErr)

	assert.Equal(t, int64(1), chile.Population, "memory keeps the change")
	onDisk, err := load(t, root).Resolve("chile")
	require.NoError(t, err)
	assert.Equal(t, int64(19000000), onDisk.Population, "disk keeps the old value")
}

func TestDelete_OnlyTouchesOwnFile(t *testing.T) {
	root := geotest.SampleTree(t)
	coll := load(t, root)
	coord := newCoordinator(root, coll, storage.NewCSV(quiet))

	south := geotest.LeafPath(root, "America", "Sur", "Republica")
	north := geotest.LeafPath(root, "America", "Norte", "Republica")
	northBefore := geotest.ReadLines(t, north)

	chile, err := coll.Resolve("chile")
	require.NoError(t, err)
	require.NoError(t, coord.Delete(chile))

	assert.Equal(t, geotest.SampleRecordCount-1, coll.Len())
	assert.False(t, coll.Contains(chile))
	assert.Equal(t, []string{
		geotest.LeafHeader,
		"Argentina,45000000,2780400",
		"Peru,33000000,1285216",
	}, geotest.ReadLines(t, south))
	assert.Equal(t, northBefore, geotest.ReadLines(t, north))
}

func TestDelete_LastRecordKeepsHeader(t *testing.T) {
	root := geotest.SampleTree(t)
	coll := load(t, root)
	coord := newCoordinator(root, coll, storage.NewCSV(quiet))

	mexico, err := coll.Resolve("mexico")
	require.NoError(t, err)
	require.NoError(t, coord.Delete(mexico))

	assert.Equal(t, []string{geotest.LeafHeader}, geotest.ReadLines(t, mexico.Source))
}

func TestDelete_FailedRewriteDiverges(t *testing.T) {
	root := geotest.SampleTree(t)
	coll := load(t, root)
	coord := newCoordinator(root, coll, failingStore{err: errors.New("read-only")})

	chile, err := coll.Resolve("chile")
	require.NoError(t, err)

	assert.ErrorIs(t, coord.Delete(chile), catalog.ErrDiverged)
	assert.False(t, coll.Contains(chile))
	assert.Equal(t, geotest.SampleRecordCount, load(t, root).Len())
}

func TestCreate(t *testing.T) {
	root := geotest.SetupDataRoot(t)
	coll := catalog.NewCollection(nil)
	coord := newCoordinator(root, coll, storage.NewCSV(quiet))

	path, err := coord.Create(NewRecord{
		Levels:     []string{"Asia", " Oriental ", "Monarquia"},
		Name:       "Japon",
		Population: 125000000,
		Area:       377975,
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "Asia", "Oriental", "Monarquia", DefaultLeafFile), path)
	assert.Equal(t, []string{geotest.LeafHeader, "Japon,125000000,377975"}, geotest.ReadLines(t, path))
	assert.Equal(t, 0, coll.Len(), "create does not extend the collection")

	_, err = coord.Create(NewRecord{
		Levels:     []string{"Asia", "Oriental", "Monarquia"},
		Name:       "Tailandia",
		Population: 70000000,
		Area:       513120,
	})
	require.NoError(t, err)
	assert.Len(t, geotest.ReadLines(t, path), 3, "header is written once")

	reloaded := load(t, root)
	require.Equal(t, 2, reloaded.Len())
	assert.Equal(t, catalog.Hierarchy{"continent": "Asia", "region": "Oriental", "government": "Monarquia"},
		reloaded.Records()[0].Hierarchy)
}

func TestCreate_CustomLeafFile(t *testing.T) {
	root := geotest.SetupDataRoot(t)
	coord := newCoordinator(root, catalog.NewCollection(nil), storage.NewCSV(quiet))
	coord.LeafFile = "paises.csv"

	path, err := coord.Create(NewRecord{Levels: []string{"a", "b", "c"}, Name: "x", Population: 1, Area: 1})
	require.NoError(t, err)
	assert.Equal(t, "paises.csv", filepath.Base(path))
}

func TestCreate_RejectsBadInput(t *testing.T) {
	root := geotest.SetupDataRoot(t)
	coord := newCoordinator(root, catalog.NewCollection(nil), storage.NewCSV(quiet))

	valid := NewRecord{Levels: []string{"Asia", "Oriental", "Monarquia"}, Name: "Japon", Population: 1, Area: 1}

	tests := []struct {
		name   string
		mutate func(*NewRecord)
	}{
		{"too few levels", func(n *NewRecord) { n.Levels = []string{"Asia"} }},
		{"empty level", func(n *NewRecord) { n.Levels = []string{"Asia", "  ", "Monarquia"} }},
		{"dot dot", func(n *NewRecord) { n.Levels = []string{"..", "Oriental", "Monarquia"} }},
		{"separator", func(n *NewRecord) { n.Levels = []string{"Asia/Este", "Oriental", "Monarquia"} }},
		{"empty name", func(n *NewRecord) { n.Name = "" }},
		{"zero population", func(n *NewRecord) { n.Population = 0 }},
		{"negative area", func(n *NewRecord) { n.Area = -5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nr := valid
			nr.Levels = append([]string(nil), valid.Levels...)
			tt.mutate(&nr)

			_, err := coord.Create(nr)
			assert.ErrorIs(t, err, catalog.ErrInvalidValue)
		})
	}

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries, "rejected input must not create directories")
}

func TestCreate_StoreFailure(t *testing.T) {
	root := geotest.SetupDataRoot(t)
	diskErr := errors.New("quota exceeded")
	coord := newCoordinator(root, catalog.NewCollection(nil), failingStore{err: diskErr})

	_, err := coord.Create(NewRecord{Levels: []string{"a", "b", "c"}, Name: "x", Population: 1, Area: 1})
	assert.ErrorIs(t, err, diskErr)
}

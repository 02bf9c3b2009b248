package wizard

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pfman/portfolio-import/pkg/config"
	"github.com/pfman/portfolio-import/pkg/model"
	"github.com/pfman/portfolio-import/pkg/validator"
)

// fakeAPI captures the submitted payload and returns a scripted error.
type fakeAPI struct {
	payload *model.CreatePortfolioPayload
	calls   int
	err     error
}

func (f *fakeAPI) CreatePortfolio(_ context.Context, payload *model.CreatePortfolioPayload) error {
	f.calls++
	f.payload = payload
	return f.err
}

func testConfig() *config.Config {
	return &config.Config{
		BatchSize:   100,
		MaxFileSize: 10 * 1024 * 1024,
		RowsPerPage: 50,
	}
}

func newTestWizard(t *testing.T, api *fakeAPI) *Wizard {
	t.Helper()
	var w *Wizard
	var err error
	if api == nil {
		w, err = New(nil, testConfig(), zap.NewNop())
	} else {
		w, err = New(api, testConfig(), zap.NewNop())
	}
	require.NoError(t, err)
	return w
}

const sampleCSV = "name,city,country,lat,lng\n" +
	"Acme Tower,Berlin,Germany,52.52,13.405\n" +
	"Beta House,Paris,,,\n" +
	",,,,\n"

func TestNewValidation(t *testing.T) {
	_, err := New(nil, nil, zap.NewNop())
	assert.Error(t, err)

	_, err = New(nil, testConfig(), nil)
	assert.Error(t, err)

	w, err := New(nil, testConfig(), zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, StateUpload, w.State())
	assert.Nil(t, w.Draft())
}

func TestSelectFileGates(t *testing.T) {
	w := newTestWizard(t, nil)

	err := w.SelectFile("data.txt", 100, sampleCSV)
	assert.ErrorIs(t, err, ErrNotCSV)

	err = w.SelectFile("data.csv", 11*1024*1024, sampleCSV)
	assert.ErrorIs(t, err, ErrFileTooLarge)

	err = w.SelectFile("data.csv", 100, "name,city\n")
	assert.Error(t, err)

	// A failed selection leaves the wizard on the upload step.
	assert.Equal(t, StateUpload, w.State())
	assert.Nil(t, w.Draft())
}

func TestSelectFileSuggestsMapping(t *testing.T) {
	w := newTestWizard(t, nil)
	require.NoError(t, w.SelectFile("data.CSV", 100, sampleCSV))

	assert.Equal(t, StateMap, w.State())
	require.NotNil(t, w.Draft())
	assert.NotEmpty(t, w.Draft().ID)
	assert.Equal(t, "data.CSV", w.Draft().SourceFile)

	mapping := w.Mapping()
	require.NotNil(t, mapping)
	assert.Equal(t, model.FieldName, mapping.Get("name"))
	assert.Equal(t, model.FieldCity, mapping.Get("city"))
	assert.Equal(t, model.FieldCountry, mapping.Get("country"))
	assert.Equal(t, model.FieldLatitude, mapping.Get("lat"))
	assert.Equal(t, model.FieldLongitude, mapping.Get("lng"))
	assert.True(t, w.MappingSufficient())
}

func TestAdvanceToReviewRequiresSufficientMapping(t *testing.T) {
	w := newTestWizard(t, nil)
	require.NoError(t, w.SelectFile("data.csv", 100, "alpha,beta\nfoo,bar\n"))
	assert.False(t, w.MappingSufficient())

	err := w.AdvanceToReview(context.Background())
	assert.ErrorIs(t, err, ErrMappingInsufficient)
	assert.Equal(t, StateMap, w.State())

	require.NoError(t, w.SetMapping("alpha", model.FieldLatitude))
	require.NoError(t, w.SetMapping("beta", model.FieldLongitude))
	require.NoError(t, w.AdvanceToReview(context.Background()))
	assert.Equal(t, StateReview, w.State())
}

func TestAdvanceToReviewFiltersAndValidates(t *testing.T) {
	w := newTestWizard(t, nil)
	require.NoError(t, w.SelectFile("data.csv", 100, sampleCSV))
	require.NoError(t, w.AdvanceToReview(context.Background()))

	// The all-blank row is filtered out before mapping.
	rows := w.Draft().Rows
	require.Len(t, rows, 2)

	assert.True(t, rows[0].Valid)
	assert.Equal(t, "Acme Tower", rows[0].Fields[model.FieldName])
	assert.Equal(t, "52.52", rows[0].Fields[model.FieldLatitude])

	assert.False(t, rows[1].Valid)
	assert.Equal(t, []string{validator.MsgInsufficientFields}, rows[1].Errors)

	stats := w.Stats()
	assert.Equal(t, 2, stats.TotalRows)
	assert.Equal(t, 1, stats.ValidRows)
	assert.Equal(t, 1, stats.InvalidRows)
	assert.Equal(t, 0, stats.EditedRows)
	assert.Equal(t, 5, stats.MappedColumns)
	assert.Equal(t, 0, stats.IgnoredColumns)
}

func TestAdvanceToReviewNoMeaningfulRows(t *testing.T) {
	w := newTestWizard(t, nil)
	require.NoError(t, w.SelectFile("data.csv", 100, "lat,lng\n,\nx,\n"))

	err := w.AdvanceToReview(context.Background())
	assert.ErrorIs(t, err, ErrNoMeaningfulRows)
	assert.Equal(t, StateMap, w.State())
}

func TestAdvanceToReviewCancelled(t *testing.T) {
	w := newTestWizard(t, nil)
	require.NoError(t, w.SelectFile("data.csv", 100, sampleCSV))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := w.AdvanceToReview(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StateMap, w.State())
}

func TestProgressReporting(t *testing.T) {
	var lines []string
	header := "lat,lng\n"
	for i := 0; i < 250; i++ {
		lines = append(lines, "52.52,13.405")
	}
	content := header + strings.Join(lines, "\n") + "\n"

	var reported [][2]int
	w := newTestWizard(t, nil)
	w.WithProgress(func(processed, total int) {
		reported = append(reported, [2]int{processed, total})
	})

	require.NoError(t, w.SelectFile("data.csv", 100, content))
	require.NoError(t, w.AdvanceToReview(context.Background()))

	require.Equal(t, [][2]int{{100, 250}, {200, 250}, {250, 250}}, reported)
}

func TestEditFieldFixesInvalidRow(t *testing.T) {
	w := newTestWizard(t, nil)
	require.NoError(t, w.SelectFile("data.csv", 100, sampleCSV))
	require.NoError(t, w.AdvanceToReview(context.Background()))

	invalid := w.Draft().InvalidRows()
	require.Len(t, invalid, 1)
	rowIndex := invalid[0].OriginalIndex

	require.NoError(t, w.EditField(rowIndex, model.FieldCountry, "France"))

	row := invalid[0]
	assert.True(t, row.Valid)
	assert.Empty(t, row.Errors)
	assert.True(t, row.Edited)
	assert.Equal(t, "France", row.Fields[model.FieldCountry])

	edits := w.Edits()
	require.Len(t, edits, 1)
	assert.Equal(t, rowIndex, edits[0].RowIndex)
	assert.Equal(t, model.FieldCountry, edits[0].Field)
	assert.Equal(t, "", edits[0].OriginalValue)
	assert.Equal(t, "France", edits[0].NewValue)
	assert.False(t, edits[0].EditedAt.IsZero())

	assert.Equal(t, 1, w.Stats().EditedRows)
}

func TestEditFieldRejectsUnknownTargets(t *testing.T) {
	w := newTestWizard(t, nil)
	require.NoError(t, w.SelectFile("data.csv", 100, sampleCSV))
	require.NoError(t, w.AdvanceToReview(context.Background()))

	assert.Error(t, w.EditField(0, model.Field("bogus"), "x"))
	assert.Error(t, w.EditField(99, model.FieldCity, "x"))
}

func TestSetDetailsValidation(t *testing.T) {
	w := newTestWizard(t, nil)
	require.NoError(t, w.SelectFile("data.csv", 100, sampleCSV))
	require.NoError(t, w.AdvanceToReview(context.Background()))
	require.NoError(t, w.AdvanceToDetails())

	assert.Error(t, w.SetDetails("", ""))
	assert.Error(t, w.SetDetails("ab", ""))
	assert.Error(t, w.SetDetails("Fine Title", strings.Repeat("x", 501)))
	assert.Equal(t, StateDetails, w.State())

	require.NoError(t, w.SetDetails("  Q3 Acquisitions  ", " first batch "))
	assert.Equal(t, StateFinalReview, w.State())
	assert.Equal(t, "Q3 Acquisitions", w.Draft().Title)
	assert.Equal(t, "first batch", w.Draft().Description)
}

func TestSubmitEndToEnd(t *testing.T) {
	api := &fakeAPI{}
	w := newTestWizard(t, api)

	require.NoError(t, w.SelectFile("data.csv", 100, sampleCSV))
	require.NoError(t, w.AdvanceToReview(context.Background()))
	require.NoError(t, w.AdvanceToDetails())
	require.NoError(t, w.SetDetails("Q3 Acquisitions", ""))
	require.NoError(t, w.Submit(context.Background()))

	assert.Equal(t, StateDone, w.State())
	assert.Equal(t, 1, api.calls)
	require.NotNil(t, api.payload)
	assert.Equal(t, "Q3 Acquisitions", api.payload.Title)

	// Only the valid row ships; the invalid one is skipped at assembly.
	require.Len(t, api.payload.Properties, 1)
	prop := api.payload.Properties[0]
	assert.Equal(t, "Acme Tower", prop[model.FieldName])
	assert.Equal(t, "Berlin", prop[model.FieldCity])
	assert.Equal(t, "Germany", prop[model.FieldCountry])
	assert.Equal(t, "52.52", prop[model.FieldLatitude])
	assert.Equal(t, "13.405", prop[model.FieldLongitude])
}

func TestSubmitFailureStaysOnFinalReview(t *testing.T) {
	api := &fakeAPI{err: assert.AnError}
	w := newTestWizard(t, api)

	require.NoError(t, w.SelectFile("data.csv", 100, sampleCSV))
	require.NoError(t, w.AdvanceToReview(context.Background()))
	require.NoError(t, w.AdvanceToDetails())
	require.NoError(t, w.SetDetails("Q3 Acquisitions", ""))

	err := w.Submit(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, StateFinalReview, w.State())

	// The same wizard can resubmit once the backend recovers.
	api.err = nil
	require.NoError(t, w.Submit(context.Background()))
	assert.Equal(t, StateDone, w.State())
	assert.Equal(t, 2, api.calls)
}

func TestSubmitRequiresValidProperties(t *testing.T) {
	api := &fakeAPI{}
	w := newTestWizard(t, api)

	require.NoError(t, w.SelectFile("data.csv", 100, "name,city,country\nAcme Tower,Paris,\n"))
	require.NoError(t, w.AdvanceToReview(context.Background()))
	require.NoError(t, w.AdvanceToDetails())
	require.NoError(t, w.SetDetails("Empty Import", ""))

	err := w.Submit(context.Background())
	assert.ErrorIs(t, err, ErrNoValidProperties)
	assert.Equal(t, 0, api.calls)
}

func TestSubmitWithoutAPI(t *testing.T) {
	w := newTestWizard(t, nil)

	require.NoError(t, w.SelectFile("data.csv", 100, sampleCSV))
	require.NoError(t, w.AdvanceToReview(context.Background()))
	require.NoError(t, w.AdvanceToDetails())
	require.NoError(t, w.SetDetails("Q3 Acquisitions", ""))

	assert.Error(t, w.Submit(context.Background()))
}

func TestInvalidTransitions(t *testing.T) {
	w := newTestWizard(t, nil)

	assert.Error(t, w.AdvanceToReview(context.Background()))
	assert.Error(t, w.AdvanceToDetails())
	assert.Error(t, w.SetDetails("Title", ""))
	assert.Error(t, w.Submit(context.Background()))
	assert.Error(t, w.SetMapping("name", model.FieldName))
	assert.Error(t, w.EditField(0, model.FieldCity, "x"))
	assert.Error(t, w.Back())

	require.NoError(t, w.SelectFile("data.csv", 100, sampleCSV))
	assert.Error(t, w.SelectFile("data.csv", 100, sampleCSV))
}

func TestBackDiscardsPerStep(t *testing.T) {
	w := newTestWizard(t, nil)
	require.NoError(t, w.SelectFile("data.csv", 100, sampleCSV))
	require.NoError(t, w.AdvanceToReview(context.Background()))
	require.NoError(t, w.AdvanceToDetails())
	require.NoError(t, w.SetDetails("Q3 Acquisitions", ""))

	// FinalReview -> Details -> Review keep the draft intact.
	require.NoError(t, w.Back())
	assert.Equal(t, StateDetails, w.State())
	require.NoError(t, w.Back())
	assert.Equal(t, StateReview, w.State())
	assert.NotEmpty(t, w.Draft().Rows)

	// Review -> Map drops the rows but keeps file and mapping.
	require.NoError(t, w.Back())
	assert.Equal(t, StateMap, w.State())
	assert.Empty(t, w.Draft().Rows)
	assert.Equal(t, model.FieldName, w.Mapping().Get("name"))

	// Rows are rebuilt when review is entered again.
	require.NoError(t, w.AdvanceToReview(context.Background()))
	assert.Len(t, w.Draft().Rows, 2)

	// Map -> Upload discards everything.
	require.NoError(t, w.Back())
	require.NoError(t, w.Back())
	assert.Equal(t, StateUpload, w.State())
	assert.Nil(t, w.Draft())
}

func TestFilteredRowsAndPaging(t *testing.T) {
	w := newTestWizard(t, nil)
	require.NoError(t, w.SelectFile("data.csv", 100, sampleCSV))
	require.NoError(t, w.AdvanceToReview(context.Background()))

	all := w.FilteredRows(RowsFilter{})
	require.Len(t, all, 2)

	invalid := w.FilteredRows(RowsFilter{InvalidOnly: true})
	require.Len(t, invalid, 1)
	assert.False(t, invalid[0].Valid)

	assert.Empty(t, w.FilteredRows(RowsFilter{EditedOnly: true}))

	require.NoError(t, w.EditField(invalid[0].OriginalIndex, model.FieldCountry, "France"))
	edited := w.FilteredRows(RowsFilter{EditedOnly: true})
	require.Len(t, edited, 1)

	assert.Len(t, w.Page(all, 1), 2)
	assert.Empty(t, w.Page(all, 2))
	assert.Empty(t, w.Page(all, 0))
}

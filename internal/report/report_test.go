package report

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/dahira/internal/ledger"
	"github.com/mmynk/dahira/internal/models"
	"github.com/mmynk/dahira/internal/storage/sqlite"
)

type fixture struct {
	store     *sqlite.SQLiteStore
	assembler *Assembler
	event     *models.Event
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "report.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	l := ledger.New(store)

	awa := &models.Member{FirstName: "Awa", LastName: "Fall", Gender: models.GenderFemale, Age: 35}
	ibou := &models.Member{FirstName: "Ibou", LastName: "Kane", Gender: models.GenderMale, Age: 50}
	gone := &models.Member{FirstName: "Omar", Gender: models.GenderMale, Age: 60}
	for _, m := range []*models.Member{awa, ibou, gone} {
		require.NoError(t, store.CreateMember(ctx, m))
	}
	event := &models.Event{Name: "Gamou 2024", Date: time.Date(2024, 9, 15, 0, 0, 0, 0, time.UTC),
		CotisationHomme: 3000, CotisationFemme: 2000, Status: models.EventOngoing}
	require.NoError(t, store.CreateEvent(ctx, event))

	_, err = l.RecordPayment(ctx, awa.ID, event.ID, 2000)
	require.NoError(t, err)
	_, err = l.RecordPayment(ctx, ibou.ID, event.ID, 1000)
	require.NoError(t, err)
	_, err = l.RecordPayment(ctx, gone.ID, event.ID, 3000)
	require.NoError(t, err)
	require.NoError(t, store.DeleteMember(ctx, gone.ID))
	require.NoError(t, l.RecordTransaction(ctx, &models.Transaction{
		EventID: event.ID, Type: models.TransactionExpense, Category: "Location", Amount: 12500,
	}))

	a := NewAssembler(l, store)
	a.now = func() time.Time { return time.Date(2024, 9, 20, 12, 0, 0, 0, time.UTC) }
	return &fixture{store: store, assembler: a, event: event}
}

func TestEventReport(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	doc, err := f.assembler.EventReport(ctx, f.event.ID)
	require.NoError(t, err)

	assert.Equal(t, "Gamou 2024", doc.Event.Name)
	assert.Equal(t, int64(6000), doc.Event.Totals.DuesCollected)
	assert.Equal(t, int64(12500), doc.Event.Totals.Expenses)
	assert.Equal(t, int64(-6500), doc.Event.Totals.Balance)
	assert.Equal(t, 2, doc.Event.MembersPaidCount)
	assert.Equal(t, 2, doc.Event.EligibleMemberCount)
	assert.Equal(t, 100, doc.Event.PaymentRate)

	require.Len(t, doc.Event.Dues, 3)
	assert.Equal(t, "Awa Fall", doc.Event.Dues[0].MemberName)
	assert.Equal(t, "Ibou Kane", doc.Event.Dues[1].MemberName)
	assert.Equal(t, int64(2000), doc.Event.Dues[1].Remaining)
	assert.Equal(t, "Membre supprimé", doc.Event.Dues[2].MemberName)

	history, err := f.assembler.History(ctx)
	require.NoError(t, err)
	assert.Empty(t, history, "assembling alone is not a download")
}

func TestEventReport_UnknownEvent(t *testing.T) {
	f := newFixture(t)
	_, err := f.assembler.EventReport(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrEventNotFound)

	history, err := f.assembler.History(context.Background())
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestAnnualReport(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	doc, err := f.assembler.AnnualReport(ctx, 2024)
	require.NoError(t, err)
	require.Len(t, doc.Events, 1)
	assert.Equal(t, doc.Events[0].Totals, doc.Totals)

	empty, err := f.assembler.AnnualReport(ctx, 2023)
	require.NoError(t, err)
	assert.NotNil(t, empty.Events)
	assert.Empty(t, empty.Events)
	assert.Zero(t, empty.Totals.Balance)

	b, err := RenderJSON(empty)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"events": []`)
}

func TestRenderHTML(t *testing.T) {
	f := newFixture(t)
	doc, err := f.assembler.EventReport(context.Background(), f.event.ID)
	require.NoError(t, err)

	html, err := RenderHTML(doc)
	require.NoError(t, err)
	assert.Contains(t, html, "Rapport : Gamou 2024")
	assert.Contains(t, html, "Awa Fall")
	assert.Contains(t, html, "En cours")
	assert.Contains(t, html, `class="num negative"`)

	_, err = RenderHTML(struct{}{})
	assert.Error(t, err)
}

func TestMoney(t *testing.T) {
	s := Money(1250000)
	assert.True(t, strings.HasSuffix(s, "F CFA"))
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
	assert.Equal(t, "1250000", digits)
	assert.NotContains(t, s, "1250000", "amounts are grouped by thousands")
}

func TestFilenameAndFormat(t *testing.T) {
	at := time.Date(2024, 9, 20, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "rapport-gamou-2024-2024-09-20.json", Filename("Gamou 2024", at, FormatJSON))
	assert.Equal(t, "rapport-dahira-2024-09-20.pdf", Filename("!!", at, FormatPDF))

	format, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, format)
	format, err = ParseFormat("PDF")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, format)
	_, err = ParseFormat("xlsx")
	assert.Error(t, err)
}

func TestRenderer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var received string
	gotenberg := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forms/chromium/convert/html", r.URL.Path)
		file, _, err := r.FormFile("files")
		if !assert.NoError(t, err) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		b, _ := io.ReadAll(file)
		received = string(b)
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.7"))
	}))
	defer gotenberg.Close()

	t.Run("json", func(t *testing.T) {
		r := NewRenderer(f.assembler, nil)
		dl, err := r.Event(ctx, f.event.ID, FormatJSON)
		require.NoError(t, err)
		assert.Equal(t, "application/json", dl.ContentType)
		assert.Equal(t, "rapport-gamou-2024-2024-09-20.json", dl.Filename)

		var doc EventReport
		require.NoError(t, json.Unmarshal(dl.Body, &doc))
		assert.Equal(t, int64(-6500), doc.Event.Totals.Balance)

		history, err := f.assembler.History(ctx)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, models.ReportEvent, history[0].Type)
		assert.Equal(t, "Rapport Gamou 2024", history[0].Name)
		assert.Equal(t, f.event.ID, history[0].EventID)
	})

	t.Run("pdf disabled", func(t *testing.T) {
		r := NewRenderer(f.assembler, nil)
		_, err := r.Annual(ctx, 2024, FormatPDF)
		assert.True(t, errors.Is(err, ErrPDFDisabled))
	})

	t.Run("pdf through gotenberg", func(t *testing.T) {
		r := NewRenderer(f.assembler, NewGotenbergClient(gotenberg.URL+"/"))
		dl, err := r.Annual(ctx, 2024, FormatPDF)
		require.NoError(t, err)
		assert.Equal(t, "application/pdf", dl.ContentType)
		assert.Equal(t, "rapport-annuel-2024-2024-09-20.pdf", dl.Filename)
		assert.Equal(t, "%PDF-1.7", string(dl.Body))
		assert.Contains(t, received, "Rapport annuel 2024")

		history, err := f.assembler.History(ctx)
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, models.ReportAnnual, history[0].Type)
		assert.Equal(t, 2024, history[0].Year)
	})

	t.Run("gotenberg failure", func(t *testing.T) {
		failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer failing.Close()

		client := NewGotenbergClient(failing.URL)
		assert.Error(t, client.Ping(ctx))
		_, err := NewRenderer(f.assembler, client).Event(ctx, f.event.ID, FormatPDF)
		assert.Error(t, err)

		history, err := f.assembler.History(ctx)
		require.NoError(t, err)
		assert.Len(t, history, 2, "failed renders are not recorded")
	})
}

package lookup

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/bryanwahyu/pwncheck/internal/application"
	appai "github.com/bryanwahyu/pwncheck/internal/application/ai"
	"github.com/bryanwahyu/pwncheck/internal/domain/ai/mocks"
	"github.com/bryanwahyu/pwncheck/internal/domain/breach"
)

type stubRetriever struct {
	result breach.Result
	err    error
	calls  int
}

func (r *stubRetriever) Lookup(_ context.Context, _ string) (breach.Result, error) {
	r.calls++
	return r.result, r.err
}

// fileChart writes a marker file so tests can see which artifacts exist.
type fileChart struct {
	points []breach.ChartPoint
	err    error
}

func (c *fileChart) RenderChart(points []breach.ChartPoint, path string) (string, error) {
	c.points = points
	if c.err != nil {
		// a failed save can leave a truncated file behind
		_ = os.WriteFile(path, []byte("pn"), 0o644)
		return "", c.err
	}
	if len(points) == 0 {
		return "", nil
	}
	return path, os.WriteFile(path, []byte("png"), 0o644)
}

type fileReport struct {
	ext   string
	input breach.ReportInput
	err   error
}

func (r *fileReport) Extension() string { return r.ext }

func (r *fileReport) RenderReport(in breach.ReportInput, path string) error {
	r.input = in
	if r.err != nil {
		return r.err
	}
	return os.WriteFile(path, []byte(r.ext), 0o644)
}

type recordingStore struct {
	keys []string
	err  error
}

func (s *recordingStore) Upload(_ context.Context, _ string, key string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.keys = append(s.keys, key)
	return "http://minio.test/pwncheck/" + key, nil
}

var adobe = breach.Breach{
	Name:        "Adobe",
	Title:       "Adobe",
	Domain:      "adobe.com",
	BreachDate:  "2013-10-4",
	IsVerified:  true,
	DataClasses: []string{"Emails", "Passwords"},
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestService_Run(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("found writes chart and reports", func(t *testing.T) {
		dir := t.TempDir()
		ctrl := gomock.NewController(t)
		client := mocks.NewMockClient(ctrl)
		client.EXPECT().
			Summarize(gomock.Any(), "test@example.com", []breach.Breach{adobe}).
			Return("One breach: Adobe.", nil)

		chart := &fileChart{}
		pdf := &fileReport{ext: "pdf"}
		docx := &fileReport{ext: "docx"}
		store := &recordingStore{}
		svc := &Service{
			Retriever: &stubRetriever{result: breach.Found([]breach.Breach{adobe})},
			Summaries: appai.NewService(client),
			Chart:     chart,
			Reports:   []breach.ReportRenderer{pdf, docx},
			Artifacts: store,
			OutputDir: dir,
			Clock:     application.FixedClock{T: now},
		}

		rep, err := svc.Run(context.Background(), " test@example.com ")
		require.NoError(t, err)

		assert.NotEmpty(t, rep.ID)
		assert.Equal(t, "test@example.com", rep.Account)
		assert.Equal(t, breach.OutcomeFound, rep.Outcome)
		assert.Equal(t, now, rep.GeneratedAt)
		require.Len(t, rep.Rows, 1)
		assert.Equal(t, "Emails, Passwords", rep.Rows[0].DataClassesText())
		assert.Equal(t, "One breach: Adobe.", rep.Summary)

		assert.Equal(t, []breach.ChartPoint{{Name: "Adobe", Count: 2}}, chart.points)
		assert.Equal(t, filepath.Join(dir, "test@example.com_breach_data.png"), rep.ChartPath)
		assert.Equal(t, []string{
			filepath.Join(dir, "test@example.com_breach_report.pdf"),
			filepath.Join(dir, "test@example.com_breach_report.docx"),
		}, rep.ReportPaths)
		assert.ElementsMatch(t, []string{
			"test@example.com_breach_data.png",
			"test@example.com_breach_report.pdf",
			"test@example.com_breach_report.docx",
		}, listDir(t, dir))

		assert.Equal(t, rep.ChartPath, pdf.input.ChartPath)
		assert.Equal(t, rep.ID, pdf.input.LookupID)
		assert.Equal(t, "One breach: Adobe.", docx.input.Summary)

		assert.Equal(t, []string{
			"test@example.com/test@example.com_breach_data.png",
			"test@example.com/test@example.com_breach_report.pdf",
			"test@example.com/test@example.com_breach_report.docx",
		}, store.keys)
		assert.Len(t, rep.ArtifactURLs, 3)
	})

	t.Run("not found writes nothing", func(t *testing.T) {
		dir := t.TempDir()
		ctrl := gomock.NewController(t)
		client := mocks.NewMockClient(ctrl) // no calls expected

		chart := &fileChart{}
		pdf := &fileReport{ext: "pdf"}
		svc := &Service{
			Retriever: &stubRetriever{result: breach.NotFound()},
			Summaries: appai.NewService(client),
			Chart:     chart,
			Reports:   []breach.ReportRenderer{pdf},
			OutputDir: dir,
		}

		rep, err := svc.Run(context.Background(), "nouser")
		require.NoError(t, err)
		assert.Equal(t, breach.OutcomeNotFound, rep.Outcome)
		assert.Empty(t, rep.Rows)
		assert.Empty(t, rep.ChartPath)
		assert.Empty(t, rep.ReportPaths)
		assert.Nil(t, chart.points)
		assert.Empty(t, listDir(t, dir))
	})

	t.Run("upstream error is reported, not returned", func(t *testing.T) {
		dir := t.TempDir()
		svc := &Service{
			Retriever: &stubRetriever{result: breach.Failed(401, "Access denied")},
			Chart:     &fileChart{},
			Reports:   []breach.ReportRenderer{&fileReport{ext: "pdf"}},
			OutputDir: dir,
		}

		rep, err := svc.Run(context.Background(), "someone")
		require.NoError(t, err)
		assert.Equal(t, breach.OutcomeError, rep.Outcome)
		assert.Equal(t, 401, rep.StatusCode)
		assert.Equal(t, "Access denied", rep.Message)
		assert.Empty(t, listDir(t, dir))
	})

	t.Run("configuration error propagates", func(t *testing.T) {
		cfgErr := &breach.ConfigurationError{Field: "hibp api key", Reason: "is not set"}
		svc := &Service{Retriever: &stubRetriever{err: cfgErr}}

		_, err := svc.Run(context.Background(), "someone")
		var target *breach.ConfigurationError
		assert.ErrorAs(t, err, &target)
	})

	t.Run("summary failure degrades to placeholder", func(t *testing.T) {
		dir := t.TempDir()
		ctrl := gomock.NewController(t)
		client := mocks.NewMockClient(ctrl)
		client.EXPECT().Summarize(gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("model overloaded"))

		pdf := &fileReport{ext: "pdf"}
		svc := &Service{
			Retriever: &stubRetriever{result: breach.Found([]breach.Breach{adobe})},
			Summaries: appai.NewService(client),
			Reports:   []breach.ReportRenderer{pdf},
			OutputDir: dir,
		}

		rep, err := svc.Run(context.Background(), "test@example.com")
		require.NoError(t, err)
		assert.Equal(t, appai.SummaryUnavailable, rep.Summary)
		assert.Equal(t, appai.SummaryUnavailable, pdf.input.Summary)
		assert.Empty(t, pdf.input.ChartPath)
		assert.FileExists(t, filepath.Join(dir, "test@example.com_breach_report.pdf"))
	})

	t.Run("without summarizer uses default summary", func(t *testing.T) {
		svc := &Service{
			Retriever: &stubRetriever{result: breach.Found([]breach.Breach{adobe})},
			OutputDir: t.TempDir(),
		}

		rep, err := svc.Run(context.Background(), "test@example.com")
		require.NoError(t, err)
		assert.Equal(t, "test@example.com appears in 1 known breach: Adobe.", rep.Summary)
	})

	t.Run("report failure removes written artifacts", func(t *testing.T) {
		dir := t.TempDir()
		svc := &Service{
			Retriever: &stubRetriever{result: breach.Found([]breach.Breach{adobe})},
			Chart:     &fileChart{},
			Reports: []breach.ReportRenderer{
				&fileReport{ext: "pdf"},
				&fileReport{ext: "docx", err: errors.New("disk full")},
			},
			OutputDir: dir,
		}

		_, err := svc.Run(context.Background(), "test@example.com")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
		assert.Empty(t, listDir(t, dir))
	})

	t.Run("chart failure removes partial chart", func(t *testing.T) {
		dir := t.TempDir()
		pdf := &fileReport{ext: "pdf"}
		svc := &Service{
			Retriever: &stubRetriever{result: breach.Found([]breach.Breach{adobe})},
			Chart:     &fileChart{err: errors.New("encode png: short write")},
			Reports:   []breach.ReportRenderer{pdf},
			OutputDir: dir,
		}

		_, err := svc.Run(context.Background(), "test@example.com")
		assert.ErrorContains(t, err, "short write")
		assert.Empty(t, listDir(t, dir))
		assert.Empty(t, pdf.input.Account)
	})

	t.Run("publish failure is returned", func(t *testing.T) {
		svc := &Service{
			Retriever: &stubRetriever{result: breach.Found([]breach.Breach{adobe})},
			Reports:   []breach.ReportRenderer{&fileReport{ext: "pdf"}},
			Artifacts: &recordingStore{err: errors.New("bucket missing")},
			OutputDir: t.TempDir(),
		}

		_, err := svc.Run(context.Background(), "test@example.com")
		assert.ErrorContains(t, err, "bucket missing")
	})

	t.Run("reruns overwrite the same files", func(t *testing.T) {
		dir := t.TempDir()
		svc := &Service{
			Retriever: &stubRetriever{result: breach.Found([]breach.Breach{adobe})},
			Chart:     &fileChart{},
			Reports:   []breach.ReportRenderer{&fileReport{ext: "pdf"}},
			OutputDir: dir,
		}

		first, err := svc.Run(context.Background(), "test@example.com")
		require.NoError(t, err)
		second, err := svc.Run(context.Background(), "test@example.com")
		require.NoError(t, err)

		assert.NotEqual(t, first.ID, second.ID)
		assert.Equal(t, first.ReportPaths, second.ReportPaths)
		assert.Len(t, listDir(t, dir), 2)
	})
}

func TestService_Lookup(t *testing.T) {
	retriever := &stubRetriever{result: breach.Found([]breach.Breach{adobe, {Name: "Canva", DataClasses: []string{"Names"}}})}
	svc := &Service{Retriever: retriever}

	res, rows, err := svc.Lookup(context.Background(), "test@example.com")
	require.NoError(t, err)
	assert.Equal(t, breach.OutcomeFound, res.Outcome)
	require.Len(t, rows, 2)
	assert.Equal(t, "Adobe", rows[0].Name)
	assert.Equal(t, "Canva", rows[1].Name)
	assert.Equal(t, 1, retriever.calls)
}

func TestDefaultSummary(t *testing.T) {
	rows := []breach.Row{{Name: "Adobe"}, {Name: "Canva"}}
	assert.Equal(t, "a appears in 2 known breaches: Adobe, Canva.", DefaultSummary("a", rows))
}

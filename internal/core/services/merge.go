package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/kmzmerge/internal/conflation"
	"github.com/custodia-labs/kmzmerge/internal/core/domain"
	"github.com/custodia-labs/kmzmerge/internal/core/ports/driven"
	"github.com/custodia-labs/kmzmerge/internal/core/ports/driving"
	"github.com/custodia-labs/kmzmerge/internal/logger"
)

// Ensure MergeService implements the interface.
var _ driving.MergeService = (*MergeService)(nil)

// MergeService reads two KMZ archives, conflates them and writes the result.
type MergeService struct {
	reader    driven.ArchiveReader
	writer    driven.ArchiveWriter
	codec     driven.KMLCodec
	settings  driving.SettingsService
	runStore  driven.RunStore
	reports   map[domain.ReportFormat]driven.ReportWriter
	publisher driven.Publisher

	now   func() time.Time
	newID func() string
}

// NewMergeService creates a merge service. runStore and publisher may be nil:
// runs are then not recorded and publishing is rejected.
func NewMergeService(
	reader driven.ArchiveReader,
	writer driven.ArchiveWriter,
	codec driven.KMLCodec,
	settings driving.SettingsService,
	runStore driven.RunStore,
	reports map[domain.ReportFormat]driven.ReportWriter,
	publisher driven.Publisher,
) *MergeService {
	return &MergeService{
		reader:    reader,
		writer:    writer,
		codec:     codec,
		settings:  settings,
		runStore:  runStore,
		reports:   reports,
		publisher: publisher,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// scaleProgress maps a 0..100 callback onto [from, to] of the outer callback.
func scaleProgress(progress domain.ProgressFunc, from, to float64) domain.ProgressFunc {
	return func(p float64, msg string) {
		progress(from+p*(to-from)/100, msg)
	}
}

// checkInputFiles rejects input archives that are missing or are directories.
func checkInputFiles(req domain.MergeRequest) error {
	inputs := []struct{ field, path string }{
		{"regular", req.RegularPath},
		{"alley", req.AlleyPath},
	}
	for _, in := range inputs {
		info, err := os.Stat(in.path)
		if err != nil {
			return domain.NewValidationError(in.field, err.Error())
		}
		if info.IsDir() {
			return domain.NewValidationError(in.field, in.path+" is a directory")
		}
	}
	return nil
}

// Merge validates the request, records a run and performs the conflation.
func (s *MergeService) Merge(ctx context.Context, req domain.MergeRequest, progress domain.ProgressFunc) (*domain.MergeResult, error) {
	if progress == nil {
		progress = domain.NopProgress
	}

	req.AreaID = strings.TrimSpace(req.AreaID)
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := checkInputFiles(req); err != nil {
		return nil, err
	}

	settings, err := s.settings.Get()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	if req.OutputDir == "" {
		req.OutputDir = settings.Output.Dir
	}
	if req.ReportFormat == "" {
		req.ReportFormat = settings.Output.Report
	}
	if req.ReportFormat.Enabled() && s.reports[req.ReportFormat] == nil {
		return nil, domain.NewValidationError("report", "no writer for "+req.ReportFormat.String())
	}
	if req.Publish && s.publisher == nil {
		return nil, domain.NewValidationError("publish", "publishing is not configured (set publish.bucket)")
	}

	run := &domain.Run{
		ID:          s.newID(),
		AreaID:      req.AreaID,
		RegularPath: req.RegularPath,
		AlleyPath:   req.AlleyPath,
		Status:      domain.RunRunning,
		StartedAt:   s.now(),
	}
	record := s.runStore != nil && settings.History.Enabled
	if record {
		if err := s.runStore.SaveRun(ctx, run); err != nil {
			logger.Warn("Could not record run start: %v", err)
			record = false
		}
	}

	logger.Section("Merge " + req.AreaID)
	result, err := s.merge(ctx, req, settings, progress)

	run.Finish(s.now(), err)
	if result != nil {
		result.RunID = run.ID
		run.Stats = result.Stats
		run.OutputPath = result.OutputPath
	}
	if record {
		s.finishRun(run, settings.History.Keep)
	}

	if err != nil {
		return nil, err
	}
	return result, nil
}

// finishRun stores the final run state with a fresh context so a cancelled
// merge is still recorded as failed.
func (s *MergeService) finishRun(run *domain.Run, keep int) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.runStore.SaveRun(ctx, run); err != nil {
		logger.Warn("Could not record run %s: %v", run.ID, err)
		return
	}
	if err := s.runStore.PruneRuns(ctx, keep); err != nil {
		logger.Warn("Could not prune run history: %v", err)
	}
}

func (s *MergeService) merge(ctx context.Context, req domain.MergeRequest, settings *domain.Settings, progress domain.ProgressFunc) (*domain.MergeResult, error) {
	progress(10, "Reading KMZ archives")
	progress(20, "Extracting KML from KMZ")
	regularKML, err := s.readKML(ctx, req.RegularPath)
	if err != nil {
		return nil, err
	}
	alleyKML, err := s.readKML(ctx, req.AlleyPath)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	progress(40, "Parsing KML data")
	regular, err := s.codec.Parse(regularKML)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", req.RegularPath, err)
	}
	alley, err := s.codec.Parse(alleyKML)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", req.AlleyPath, err)
	}

	build := scaleProgress(progress, 40, 80)
	out, stats, homes, err := s.build(ctx, regular, alley, settings.Match, build)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	progress(80, "Creating KMZ")
	data, err := out.Bytes()
	if err != nil {
		return nil, fmt.Errorf("serializing KML: %w", err)
	}

	base := req.OutputBaseName()
	outputPath := filepath.Join(req.OutputDir, base+".kmz")
	if err := s.writer.WriteKMZ(ctx, outputPath, base+".kml", data); err != nil {
		return nil, fmt.Errorf("writing %s: %w", outputPath, err)
	}
	logger.Info("Wrote %s", outputPath)

	result := &domain.MergeResult{
		OutputPath: outputPath,
		Stats:      stats,
	}

	if req.ReportFormat.Enabled() {
		progress(90, "Writing report")
		reportPath := filepath.Join(req.OutputDir, base+req.ReportFormat.Extension())
		if err := s.reports[req.ReportFormat].Write(ctx, reportPath, homes, stats); err != nil {
			return nil, fmt.Errorf("writing report: %w", err)
		}
		result.ReportPath = reportPath
	}

	if req.Publish {
		progress(95, "Publishing KMZ")
		url, err := s.publisher.Publish(ctx, outputPath, filepath.Base(outputPath))
		if err != nil {
			return nil, fmt.Errorf("publishing: %w", err)
		}
		result.PublishedURL = url
	}

	progress(100, "Done")
	return result, nil
}

func (s *MergeService) readKML(ctx context.Context, path string) ([]byte, error) {
	data, entry, err := s.reader.ReadKML(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Debug("Read %s from %s (%d bytes)", entry, path, len(data))
	return data, nil
}

// build extracts records, runs conflation and assembles the output document.
// Progress is reported on its own 0..100 scale.
func (s *MergeService) build(
	ctx context.Context,
	regular, alley driven.KMLSource,
	match domain.MatchSettings,
	progress domain.ProgressFunc,
) (driven.KMLOutput, domain.MergeStats, []*domain.EnrichedHome, error) {
	var stats domain.MergeStats

	progress(0, "Extracting data from KML")
	in := conflation.Input{
		Alley:      alley.ExtractPoints(domain.PathHomePass),
		Regular:    regular.ExtractPoints(domain.PathHomePass),
		Hooks:      regular.ExtractPoints(domain.PathHook),
		Boundaries: alley.ExtractPolygons(domain.PathBoundaryFAT),
	}
	stats.AlleyHomes = len(in.Alley)
	stats.RegularHomes = len(in.Regular)
	stats.Hooks = len(in.Hooks)
	stats.Boundaries = len(in.Boundaries)
	progress(10, fmt.Sprintf("Found %d small-alley home-passes, %d regular home-passes, %d hooks and %d FAT boundaries",
		stats.AlleyHomes, stats.RegularHomes, stats.Hooks, stats.Boundaries))

	out := s.codec.NewOutput()
	progress(20, "Adding KML schemas and styles")
	progress(30, "Creating folder structure")

	if err := ctx.Err(); err != nil {
		return nil, stats, nil, err
	}

	engine := conflation.New(conflation.Options{
		HookRadiusMeters: match.HookRadiusMeters,
		ProgressEvery:    match.ProgressEvery,
	})
	enriched := engine.Enrich(in, scaleProgress(progress, 40, 80))
	stats.Inherited = enriched.Stats.Inherited
	stats.ZoneAssigned = enriched.Stats.ZoneAssigned
	stats.HookLinked = enriched.Stats.HookLinked
	stats.Business = enriched.Stats.Business
	stats.Residential = enriched.Stats.Residential

	if err := ctx.Err(); err != nil {
		return nil, stats, nil, err
	}

	for _, home := range enriched.Homes {
		out.AddHome(home)
	}

	progress(80, "Adding hooks and copying regular folders")
	for i := range in.Hooks {
		out.AddHook(&in.Hooks[i])
	}

	copied, skipped, err := out.CopyPaths(regular, domain.CopyThroughPaths)
	if err != nil {
		return nil, stats, nil, fmt.Errorf("copying folders: %w", err)
	}
	boundary, err := out.CopyBoundaryFAT(alley)
	if err != nil {
		return nil, stats, nil, fmt.Errorf("copying %s: %w", domain.FolderBoundaryFAT, err)
	}
	stats.CopiedElements = copied + boundary
	stats.SkippedCopyPaths = skipped

	progress(100, "KML assembled")
	return out, stats, enriched.Homes, nil
}

// IsInputError reports whether err was caused by operator input rather than
// by processing. Such errors are shown without a stack of wrapped context.
func IsInputError(err error) bool {
	return errors.Is(err, domain.ErrInvalidInput)
}

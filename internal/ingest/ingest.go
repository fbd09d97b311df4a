// Package ingest turns a delimited text export into task records. Free text
// fields are normalised here once, so the rest of the dashboard only sees
// typed values.
package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/google/uuid"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/agalitsyn/taskdash/internal/model"
)

// Column names recognised in the header row.
const (
	ColumnID             = "Task ID"
	ColumnDescription    = "Task Description"
	ColumnStatus         = "Status"
	ColumnOwner          = "owner"
	ColumnCategory       = "Category"
	ColumnProject        = "Project"
	ColumnInitiative     = "Initiative"
	ColumnTags           = "Tags"
	ColumnStatusUpdate   = "Status Update"
	ColumnDesiredOutcome = "Desired Outcome"
	ColumnTimeEstimate   = "timeEstimate"
	ColumnPriority       = "priority"
	ColumnStartDate      = "startDate"
	ColumnDueDate        = "dueDate"
	ColumnDuration       = "duration"
	ColumnActualTime     = "actualTime"
	ColumnProgress       = "progress"
	ColumnDependencies   = "dependencies"
	ColumnScheduledTime  = "scheduledTime"
)

var ErrNoHeader = errors.New("missing header row")

// rowNamespace seeds the ids generated for rows without a Task ID.
var rowNamespace = uuid.MustParse("5b0b3c0e-8f0e-4c38-9d55-2f8d0c6b7a41")

type Options struct {
	// Delimiter is detected from the header line when zero.
	Delimiter rune
}

type Reader struct {
	opts Options
	log  lgr.L
}

func NewReader(opts Options, logger lgr.L) *Reader {
	if logger == nil {
		logger = lgr.NoOp
	}
	return &Reader{opts: opts, log: logger}
}

// LoadFile reads tasks from path.
func (r *Reader) LoadFile(path string) ([]model.Task, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", path, err)
	}
	defer f.Close()

	tasks, err := r.Read(f)
	if err != nil {
		return nil, fmt.Errorf("could not parse %s: %w", path, err)
	}
	return tasks, nil
}

// Load is LoadFile for the dashboard boundary: a failure is logged and
// yields an empty collection, never partial data.
func (r *Reader) Load(path string) []model.Task {
	tasks, err := r.LoadFile(path)
	if err != nil {
		r.log.Logf("[WARN] could not load tasks: %v", err)
		return nil
	}
	return tasks
}

// Read parses the whole input. Any malformed row fails the entire read.
func (r *Reader) Read(in io.Reader) ([]model.Task, error) {
	data, err := io.ReadAll(transform.NewReader(in, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	if err != nil {
		return nil, fmt.Errorf("could not read input: %w", err)
	}

	delim := r.opts.Delimiter
	if delim == 0 {
		delim = DetectDelimiter(data)
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = delim
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("could not read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}

	var (
		tasks []model.Task
		seen  = make(map[string]int)
	)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("could not read row: %w", err)
		}
		if isBlank(record) {
			continue
		}

		line, _ := cr.FieldPos(0)
		row := row{cols: cols, record: record}
		task := r.toTask(row, line)

		if n, dup := seen[task.ID]; dup {
			// skip suffixes taken by explicit ids or earlier renames
			var newID string
			for {
				n++
				newID = fmt.Sprintf("%s#%d", task.ID, n)
				if _, taken := seen[newID]; !taken {
					break
				}
			}
			seen[task.ID] = n
			r.log.Logf("[WARN] duplicate task id %q on line %d, using %q", task.ID, line, newID)
			task.ID = newID
		}
		seen[task.ID] = 1

		tasks = append(tasks, task)
	}

	r.log.Logf("[DEBUG] parsed %d tasks, delimiter %q", len(tasks), delim)
	return tasks, nil
}

func (r *Reader) toTask(row row, line int) model.Task {
	id := row.get(ColumnID)
	if id == "" {
		id = uuid.NewSHA1(rowNamespace, []byte(fmt.Sprintf("%d:%s", line, row.get(ColumnDescription)))).String()
		r.log.Logf("[DEBUG] line %d has no task id, generated %s", line, id)
	}

	task := model.NewTask(id, row.get(ColumnDescription))
	task.Status = model.ParseTaskStatus(row.get(ColumnStatus))
	task.Owner = orDefault(row.get(ColumnOwner), model.DefaultOwner)
	task.Category = row.get(ColumnCategory)
	task.Project = row.get(ColumnProject)
	task.Initiative = row.get(ColumnInitiative)
	task.Tags = model.SplitList(row.get(ColumnTags))
	task.Priority = model.ParsePriority(row.get(ColumnPriority))
	task.StatusUpdate = orDefault(row.get(ColumnStatusUpdate), model.DefaultStatusUpdate)
	task.DesiredOutcome = orDefault(row.get(ColumnDesiredOutcome), model.DefaultDesiredOutcome)
	task.EstimateMinutes = model.ParseEstimate(row.get(ColumnTimeEstimate))
	task.ScheduledTime = row.get(ColumnScheduledTime)
	task.Dependencies = model.SplitList(row.get(ColumnDependencies))

	if n, ok := model.ParseMinutes(row.get(ColumnDuration)); ok {
		task.DurationMinutes = n
	}
	if n, ok := model.ParseMinutes(row.get(ColumnActualTime)); ok {
		task.ActualMinutes = n
	}
	if n, ok := model.ParseLeadingInt(row.get(ColumnProgress)); ok {
		task.Progress = min(max(n, 0), 100)
	}

	task.StartDate = r.date(row, ColumnStartDate, line)
	task.DueDate = r.date(row, ColumnDueDate, line)

	return *task
}

func (r *Reader) date(row row, col string, line int) time.Time {
	raw := row.get(col)
	if raw == "" {
		return time.Time{}
	}
	t, ok := model.ParseDate(raw)
	if !ok {
		r.log.Logf("[DEBUG] line %d: ignoring unparsable %s %q", line, col, raw)
	}
	return t
}

// DetectDelimiter picks the most frequent of comma, tab, semicolon and pipe
// on the header line, preferring comma on ties.
func DetectDelimiter(data []byte) rune {
	header := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		header = data[:i]
	}

	best, bestCount := ',', bytes.Count(header, []byte{','})
	for _, c := range []rune{'\t', ';', '|'} {
		if n := bytes.Count(header, []byte(string(c))); n > bestCount {
			best, bestCount = c, n
		}
	}
	return best
}

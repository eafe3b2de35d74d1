package postgres

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
	"time"

	"internmatch-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// ErrInvalidCursor signals a cursor issued for a different filter shape.
// Callers must restart paging from the beginning.
var ErrInvalidCursor = errors.New("cursor does not match filter criteria")

type jobRepo struct {
	db *pgxpool.Pool
}

// NewJobRepository creates a new job repository
func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

const jobColumns = `id, title, company, location, description, requirements, salary,
	job_type, remote, sponsors_visa, responsibilities, benefits, source, url,
	posted_date, thumbnail, created_at`

// List pages the catalog newest-first with a keyset cursor. Remote, visa and
// job-type filters are pushed into SQL; location and salary-range filters are
// applied to the fetched page, since both match against free text the store
// cannot index.
func (r *jobRepo) List(ctx context.Context, filters domain.JobFilters, cursor string, limit int) (*domain.JobPage, error) {
	if limit < 1 {
		limit = 10
	}

	var conditions []string
	var args []interface{}
	argN := 1

	add := func(cond string, val interface{}) {
		conditions = append(conditions, fmt.Sprintf(cond, argN))
		args = append(args, val)
		argN++
	}

	if filters.Remote != nil {
		add("remote = $%d", *filters.Remote)
	}
	if filters.VisaSponsorship != nil {
		add("sponsors_visa = $%d", *filters.VisaSponsorship)
	}
	if filters.JobType != "" {
		add("job_type = $%d", filters.JobType)
	}

	if cursor != "" {
		after, err := decodeCursor(cursor, filters)
		if err != nil {
			return nil, err
		}
		conditions = append(conditions, fmt.Sprintf("(created_at, id) < ($%d, $%d)", argN, argN+1))
		args = append(args, after.createdAt, after.id)
		argN += 2
	}

	query := "SELECT " + jobColumns + " FROM jobs"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d", argN)
	args = append(args, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []domain.Job
	var lastScanned *domain.Job
	count := 0
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		count++
		lastScanned = job
		if matchesPostFilters(*job, filters) {
			jobs = append(jobs, *job)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	page := &domain.JobPage{Jobs: jobs}
	// A short page means the listing is exhausted; otherwise the cursor
	// advances past the last scanned row even when post-filters dropped it.
	if count == limit && lastScanned != nil {
		page.Cursor = encodeCursor(lastScanned.CreatedAt, lastScanned.ID, filters)
	}
	return page, nil
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	query := "SELECT " + jobColumns + " FROM jobs WHERE id = $1"
	row := r.db.QueryRow(ctx, query, id)
	job, err := scanJobRow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return job, nil
}

// ListCreatedSince feeds the daily digest.
func (r *jobRepo) ListCreatedSince(ctx context.Context, since time.Time) ([]domain.Job, error) {
	query := "SELECT " + jobColumns + " FROM jobs WHERE created_at >= $1 ORDER BY created_at DESC"
	rows, err := r.db.Query(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

func scanJob(rows pgx.Rows) (*domain.Job, error) {
	var job domain.Job
	var responsibilities, benefits []string
	if err := rows.Scan(
		&job.ID, &job.Title, &job.Company, &job.Location, &job.Description,
		&job.Requirements, &job.Salary, &job.JobType, &job.Remote,
		&job.SponsorsVisa, pq.Array(&responsibilities), pq.Array(&benefits),
		&job.Source, &job.URL, &job.PostedDate, &job.Thumbnail, &job.CreatedAt,
	); err != nil {
		return nil, err
	}
	job.Responsibilities = responsibilities
	job.Benefits = benefits
	return &job, nil
}

func scanJobRow(row pgx.Row) (*domain.Job, error) {
	var job domain.Job
	var responsibilities, benefits []string
	if err := row.Scan(
		&job.ID, &job.Title, &job.Company, &job.Location, &job.Description,
		&job.Requirements, &job.Salary, &job.JobType, &job.Remote,
		&job.SponsorsVisa, pq.Array(&responsibilities), pq.Array(&benefits),
		&job.Source, &job.URL, &job.PostedDate, &job.Thumbnail, &job.CreatedAt,
	); err != nil {
		return nil, err
	}
	job.Responsibilities = responsibilities
	job.Benefits = benefits
	return &job, nil
}

// matchesPostFilters applies the filters the store cannot index: location
// substring and parsed salary range.
func matchesPostFilters(job domain.Job, filters domain.JobFilters) bool {
	if len(filters.Locations) > 0 {
		jobLocation := strings.ToLower(job.Location)
		matched := false
		for _, loc := range filters.Locations {
			if strings.Contains(jobLocation, strings.ToLower(loc)) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	if filters.SalaryRange != nil {
		digits := firstDigitRun(job.Salary)
		if digits != "" {
			salary, err := strconv.Atoi(digits)
			if err == nil {
				if filters.SalaryRange.Min != nil && salary < *filters.SalaryRange.Min {
					return false
				}
				if filters.SalaryRange.Max != nil && salary > *filters.SalaryRange.Max {
					return false
				}
			}
		}
	}

	return true
}

func firstDigitRun(s string) string {
	start := -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
		} else if start >= 0 {
			return s[start:i]
		}
	}
	if start >= 0 {
		return s[start:]
	}
	return ""
}

// --- cursor codec ---
//
// Cursors are opaque to callers and bound to the filter shape that issued
// them: format "unixnano|jobID|filterhash", base64 encoded.

type cursorPos struct {
	createdAt time.Time
	id        string
}

func filterHash(filters domain.JobFilters) string {
	h := fnv.New32a()
	fmt.Fprintf(h, "%s|%s|%s|%v|%s",
		boolKey(filters.Remote), boolKey(filters.VisaSponsorship),
		filters.JobType, filters.Locations, salaryKey(filters.SalaryRange))
	return strconv.FormatUint(uint64(h.Sum32()), 16)
}

func boolKey(b *bool) string {
	if b == nil {
		return "nil"
	}
	return strconv.FormatBool(*b)
}

func intKey(n *int) string {
	if n == nil {
		return "nil"
	}
	return strconv.Itoa(*n)
}

func salaryKey(r *domain.SalaryRange) string {
	if r == nil {
		return "nil"
	}
	return intKey(r.Min) + "-" + intKey(r.Max)
}

func encodeCursor(createdAt time.Time, id string, filters domain.JobFilters) string {
	raw := fmt.Sprintf("%d|%s|%s", createdAt.UnixNano(), id, filterHash(filters))
	return base64.URLEncoding.EncodeToString([]byte(raw))
}

func decodeCursor(cursor string, filters domain.JobFilters) (*cursorPos, error) {
	raw, err := base64.URLEncoding.DecodeString(cursor)
	if err != nil {
		return nil, ErrInvalidCursor
	}
	parts := strings.SplitN(string(raw), "|", 3)
	if len(parts) != 3 {
		return nil, ErrInvalidCursor
	}
	nanos, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return nil, ErrInvalidCursor
	}
	if parts[2] != filterHash(filters) {
		return nil, ErrInvalidCursor
	}
	return &cursorPos{createdAt: time.Unix(0, nanos), id: parts[1]}, nil
}

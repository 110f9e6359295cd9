package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/timmy/carmate/internal/domain"
	"github.com/timmy/carmate/internal/logger"
)

// Stage is a step of a pipeline run. A run moves through the stages in
// declaration order and ends in StageSucceeded or StageFailed.
type Stage string

const (
	StageReceived         Stage = "received"
	StageParsed           Stage = "parsed"
	StageValidated        Stage = "validated"
	StageKeysResolved     Stage = "keys_resolved"
	StageDuplicateChecked Stage = "duplicate_checked"
	StageBatched          Stage = "batched"
	StageWritten          Stage = "written"
	StageSucceeded        Stage = "succeeded"
	StageFailed           Stage = "failed"
)

// DefaultMaxRows caps the data rows of a single upload.
const DefaultMaxRows = 10000

// Config tunes a Pipeline.
type Config struct {
	BatchSize int
	MaxRows   int
	// Atomic wraps all batches in one outer transaction so a failed batch
	// also rolls back the batches committed before it.
	Atomic bool
}

// Request is one uploaded file to ingest.
type Request struct {
	TenantID uint
	Kind     domain.EntityKind
	Data     []byte
}

// Result reports how far a run got. It is returned for failed runs too.
type Result struct {
	Kind             domain.EntityKind
	Stage            Stage
	FailedAt         Stage // last stage reached before failing
	Rows             int
	Batches          int
	CommittedBatches int
	Persisted        int
	ModelsCreated    int
	StartTime        time.Time
	EndTime          time.Time
}

// Duration returns how long the run took.
func (r *Result) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

// Pipeline ingests CSV uploads: parse, validate, resolve references, reject
// duplicates, then write in batches.
type Pipeline struct {
	store     Datastore
	parser    *Parser
	validator *Validator
	cfg       Config
	logger    *logger.Logger
}

// NewPipeline creates a Pipeline. Zero config values fall back to defaults.
func NewPipeline(store Datastore, log *logger.Logger, cfg *Config) *Pipeline {
	c := Config{}
	if cfg != nil {
		c = *cfg
	}
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.MaxRows <= 0 {
		c.MaxRows = DefaultMaxRows
	}
	if log == nil {
		log = logger.GetDefault()
	}
	return &Pipeline{
		store:     store,
		parser:    &Parser{MaxRows: c.MaxRows},
		validator: NewValidator(),
		cfg:       c,
		logger:    log,
	}
}

func (p *Pipeline) log(ctx context.Context) *logger.Logger {
	if ctx != nil {
		if l := logger.FromContext(ctx); l != logger.GetDefault() {
			return l
		}
	}
	return p.logger
}

// Ingest runs req through the pipeline. On failure the returned error
// wraps one of the Err* kinds and the Result tells which stage failed and
// how many batches had been committed.
func (p *Pipeline) Ingest(ctx context.Context, req Request) (*Result, error) {
	res := &Result{Kind: req.Kind, Stage: StageReceived, StartTime: time.Now()}

	var err error
	switch req.Kind {
	case domain.EntityKindCar:
		err = run(ctx, p, req, p.carKind(), res)
	case domain.EntityKindCustomer:
		err = run(ctx, p, req, p.customerKind(), res)
	default:
		err = &Error{Kind: ErrRowValidation, Err: fmt.Errorf("%w: %q", ErrUnknownKind, req.Kind)}
	}
	res.EndTime = time.Now()

	entry := logger.With(logger.Fields{logger.FieldEntityKind: string(req.Kind)}).
		WithRows(res.Rows).
		WithBatches(res.CommittedBatches).
		WithCount(res.Persisted).
		WithDuration(res.Duration().Milliseconds())
	ctx = p.log(ctx).WithContext(ctx)

	if err != nil {
		res.FailedAt = res.Stage
		res.Stage = StageFailed
		entry.WithField(logger.FieldStage, string(res.FailedAt)).WithStatus("failed").
			Warn(ctx, "Ingest failed: %v", err)
		return res, err
	}

	res.Stage = StageSucceeded
	entry.WithStatus("succeeded").Info(ctx, "Ingest completed: %d rows in %d batches", res.Persisted, res.CommittedBatches)
	return res, nil
}

func (p *Pipeline) advance(ctx context.Context, res *Result, stage Stage) {
	p.log(ctx).Debugf("Stage %s -> %s", res.Stage, stage)
	res.Stage = stage
}

// kind bundles the per-entity steps of a run.
type kind[T any] struct {
	keyField string
	validate func(RawRow) (T, error)
	row      func(*T) int
	key      func(*T) string
	resolve  func(ctx context.Context, tenantID uint, records []T, res *Result) error
	existing func(ctx context.Context, store Datastore, tenantID uint, keys []string) ([]string, error)
	create   func(ctx context.Context, tx Datastore, tenantID uint, batch []T) error
}

func run[T any](ctx context.Context, p *Pipeline, req Request, k kind[T], res *Result) error {
	rows, err := p.parser.Parse(req.Data)
	if err != nil {
		return err
	}
	res.Rows = len(rows)
	p.advance(ctx, res, StageParsed)

	if len(rows) == 0 {
		return &Error{Kind: ErrRowValidation, Err: ErrNoData}
	}
	records := make([]T, 0, len(rows))
	for _, raw := range rows {
		rec, err := k.validate(raw)
		if err != nil {
			return err
		}
		records = append(records, rec)
	}
	p.advance(ctx, res, StageValidated)

	if k.resolve != nil {
		if err := k.resolve(ctx, req.TenantID, records, res); err != nil {
			return err
		}
	}
	p.advance(ctx, res, StageKeysResolved)

	keys := make([]string, len(records))
	for i := range records {
		keys[i] = k.key(&records[i])
	}
	existing, err := k.existing(ctx, p.store, req.TenantID, keys)
	if err != nil {
		return &Error{Kind: ErrDuplicateKey, Field: k.keyField, Err: fmt.Errorf("failed to look up existing keys: %w", err)}
	}
	guard := NewDuplicateGuard(k.keyField, existing)
	for i := range records {
		if err := guard.Check(k.row(&records[i]), keys[i]); err != nil {
			return err
		}
	}
	p.advance(ctx, res, StageDuplicateChecked)

	batches := Chunk(records, p.cfg.BatchSize)
	res.Batches = len(batches)
	p.advance(ctx, res, StageBatched)

	if err := write(ctx, p, req.TenantID, batches, k.create, res); err != nil {
		return err
	}
	p.advance(ctx, res, StageWritten)
	return nil
}

func write[T any](ctx context.Context, p *Pipeline, tenantID uint, batches [][]T,
	create func(context.Context, Datastore, uint, []T) error, res *Result) error {
	writeAll := func(store Datastore) error {
		w := NewWriter(store)
		for i, batch := range batches {
			err := w.WriteBatch(ctx, i+1, func(tx Datastore) error {
				return create(ctx, tx, tenantID, batch)
			})
			if err != nil {
				return err
			}
			res.CommittedBatches++
			res.Persisted += len(batch)
			p.log(ctx).Debugf("Committed batch %d/%d (%d rows)", i+1, len(batches), len(batch))
		}
		return nil
	}

	if !p.cfg.Atomic {
		return writeAll(p.store)
	}

	err := p.store.Transaction(ctx, writeAll)
	if err == nil {
		return nil
	}
	res.CommittedBatches = 0
	res.Persisted = 0
	var ie *Error
	if errors.As(err, &ie) {
		return err
	}
	return &Error{Kind: ErrBatchWrite, Err: err}
}

func (p *Pipeline) carKind() kind[CarRecord] {
	return kind[CarRecord]{
		keyField: "carNumber",
		validate: p.validator.Car,
		row:      func(r *CarRecord) int { return r.Row },
		key:      func(r *CarRecord) string { return r.CarNumber },
		resolve: func(ctx context.Context, tenantID uint, records []CarRecord, res *Result) error {
			resolver := NewModelResolver(p.store, tenantID)
			defer func() { res.ModelsCreated = resolver.Created() }()
			for i := range records {
				rec := &records[i]
				key := ModelKey{Manufacturer: rec.Manufacturer, Model: rec.Model}
				id, err := resolver.Resolve(ctx, key, rec.Type)
				if err != nil {
					return &Error{Kind: ErrUnresolvableReference, Row: rec.Row, Field: "model", Key: key.String(), Err: err}
				}
				rec.CarModelID = id
			}
			return nil
		},
		existing: func(ctx context.Context, store Datastore, tenantID uint, keys []string) ([]string, error) {
			return store.ExistingCarNumbers(ctx, tenantID, keys)
		},
		create: func(ctx context.Context, tx Datastore, tenantID uint, batch []CarRecord) error {
			cars := make([]domain.Car, len(batch))
			for i, r := range batch {
				cars[i] = domain.Car{
					CompanyID:         tenantID,
					CarModelID:        r.CarModelID,
					CarNumber:         r.CarNumber,
					ManufacturingYear: r.ManufacturingYear,
					Mileage:           r.Mileage,
					Price:             r.Price,
					AccidentCount:     r.AccidentCount,
					Explanation:       r.Explanation,
					AccidentDetails:   r.AccidentDetails,
					Status:            domain.CarStatusPossession,
				}
			}
			return tx.CreateCars(ctx, cars)
		},
	}
}

func (p *Pipeline) customerKind() kind[CustomerRecord] {
	return kind[CustomerRecord]{
		keyField: "phoneNumber",
		validate: p.validator.Customer,
		row:      func(r *CustomerRecord) int { return r.Row },
		key:      func(r *CustomerRecord) string { return r.PhoneNumber },
		existing: func(ctx context.Context, store Datastore, tenantID uint, keys []string) ([]string, error) {
			return store.ExistingPhoneNumbers(ctx, tenantID, keys)
		},
		create: func(ctx context.Context, tx Datastore, tenantID uint, batch []CustomerRecord) error {
			customers := make([]domain.Customer, len(batch))
			for i, r := range batch {
				customers[i] = domain.Customer{
					CompanyID:   tenantID,
					Name:        r.Name,
					Gender:      r.Gender,
					PhoneNumber: r.PhoneNumber,
					AgeGroup:    r.AgeGroup,
					Region:      r.Region,
					Email:       r.Email,
					Memo:        r.Memo,
				}
			}
			return tx.CreateCustomers(ctx, customers)
		},
	}
}

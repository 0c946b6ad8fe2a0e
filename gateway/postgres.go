package gateway

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

// Postgres stores documents as jsonb rows in a single "document" table:
//
//	path text primary key, collection text, fields jsonb,
//	create_time timestamptz, update_time timestamptz
//
// Merge writes use the jsonb || operator so untouched fields survive.
// The hosted store pushes changes; Postgres has no push channel here, so
// subscriptions poll on PollInterval and fire when the document changes.
type Postgres struct {
	DB *goqu.Database

	// PollInterval drives Subscribe and QueryOrderedLimited. Defaults to
	// 2s when zero.
	PollInterval time.Duration
}

func NewPostgres(db *goqu.Database) *Postgres {
	return &Postgres{DB: db}
}

// createdAtLayout is fixed-width, unlike RFC3339Nano which drops trailing
// zeros: queryWindow orders by the jsonb text value, so the encoding must
// sort lexicographically in chronological order.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

type documentRow struct {
	Path       string    `db:"path"`
	Fields     []byte    `db:"fields"`
	CreateTime time.Time `db:"create_time"`
}

func (p *Postgres) ReadOnce(ctx context.Context, path string) (Fields, error) {
	var row documentRow
	found, err := p.DB.From("document").
		Select("path", "fields", "create_time").
		Where(goqu.C("path").Eq(path)).
		ScanStructContext(ctx, &row)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	return decodeFields(row.Fields)
}

func (p *Postgres) WriteMerge(ctx context.Context, path string, fields Fields) error {
	encoded, err := json.Marshal(fields)
	if err != nil {
		return err
	}

	insert := p.DB.Insert("document").
		Rows(goqu.Record{
			"path":        path,
			"collection":  collectionOf(path),
			"fields":      string(encoded),
			"create_time": goqu.L("now()"),
			"update_time": goqu.L("now()"),
		}).
		OnConflict(goqu.DoUpdate("path", goqu.Record{
			"fields":      goqu.L("document.fields || excluded.fields"),
			"update_time": goqu.L("now()"),
		})).
		Executor()
	_, err = insert.ExecContext(ctx)
	return err
}

func (p *Postgres) Increment(ctx context.Context, path string, field string, delta int64) error {
	// jsonb arithmetic on the one field; missing document means no row to
	// update and the caller falls back to create-with-initial-value.
	update := p.DB.Update("document").
		Set(goqu.Record{
			"fields": goqu.L(
				"jsonb_set(fields, ?, to_jsonb(COALESCE((fields->>?)::bigint, 0) + ?))",
				"{"+field+"}", field, delta,
			),
			"update_time": goqu.L("now()"),
		}).
		Where(goqu.C("path").Eq(path)).
		Executor()

	result, err := update.ExecContext(ctx)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) Delete(ctx context.Context, path string) error {
	del := p.DB.Delete("document").Where(goqu.C("path").Eq(path)).Executor()
	_, err := del.ExecContext(ctx)
	return err
}

func (p *Postgres) Add(ctx context.Context, collection string, fields Fields) (string, error) {
	id := uuid.NewString()
	doc := cloneFields(fields)
	doc[CreatedAtField] = time.Now().UTC().Format(createdAtLayout)

	encoded, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}

	insert := p.DB.Insert("document").
		Rows(goqu.Record{
			"path":        collection + "/" + id,
			"collection":  collection,
			"fields":      string(encoded),
			"create_time": goqu.L("now()"),
			"update_time": goqu.L("now()"),
		}).
		Executor()
	if _, err := insert.ExecContext(ctx); err != nil {
		return "", err
	}
	return id, nil
}

func (p *Postgres) Subscribe(path string, fn func(Fields)) (CancelFunc, error) {
	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(p.pollInterval())
		defer ticker.Stop()

		var last string
		poll := func() {
			doc, err := p.ReadOnce(context.Background(), path)
			if err != nil {
				if err != ErrNotFound {
					log.Printf("gateway: poll %s: %v", path, err)
				}
				return
			}
			encoded, _ := json.Marshal(doc)
			if string(encoded) == last {
				return
			}
			last = string(encoded)
			fn(doc)
		}

		poll()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				poll()
			}
		}
	}()

	var once bool
	return func() {
		if !once {
			once = true
			close(stop)
		}
	}, nil
}

func (p *Postgres) QueryOrderedLimited(collection string, orderField string, desc bool, limit int, fn func([]Record)) (CancelFunc, error) {
	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(p.pollInterval())
		defer ticker.Stop()

		var last string
		poll := func() {
			records, err := p.queryWindow(context.Background(), collection, orderField, desc, limit)
			if err != nil {
				log.Printf("gateway: poll collection %s: %v", collection, err)
				return
			}
			encoded, _ := json.Marshal(records)
			if string(encoded) == last {
				return
			}
			last = string(encoded)
			fn(records)
		}

		poll()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				poll()
			}
		}
	}()

	var once bool
	return func() {
		if !once {
			once = true
			close(stop)
		}
	}, nil
}

func (p *Postgres) queryWindow(ctx context.Context, collection string, orderField string, desc bool, limit int) ([]Record, error) {
	order := goqu.L("fields->>?", orderField).Asc()
	if desc {
		order = goqu.L("fields->>?", orderField).Desc()
	}

	var rows []documentRow
	err := p.DB.From("document").
		Select("path", "fields", "create_time").
		Where(goqu.C("collection").Eq(collection)).
		Order(order).
		Limit(uint(limit)).
		ScanStructsContext(ctx, &rows)
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		fields, err := decodeFields(row.Fields)
		if err != nil {
			return nil, err
		}
		records = append(records, Record{
			ID:         strings.TrimPrefix(row.Path, collection+"/"),
			Fields:     fields,
			CreateTime: row.CreateTime,
		})
	}
	return records, nil
}

func (p *Postgres) pollInterval() time.Duration {
	if p.PollInterval > 0 {
		return p.PollInterval
	}
	return 2 * time.Second
}

func decodeFields(raw []byte) (Fields, error) {
	var fields Fields
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

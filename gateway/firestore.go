package gateway

import (
	"context"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Firestore adapts a Cloud Firestore client to the Store interface. This is
// the production backend: merge writes map to MergeAll sets, increments to
// the Increment transform, and subscriptions to snapshot listeners.
type Firestore struct {
	Client *firestore.Client
}

func NewFirestore(client *firestore.Client) *Firestore {
	return &Firestore{Client: client}
}

func (f *Firestore) ReadOnce(ctx context.Context, path string) (Fields, error) {
	snap, err := f.Client.Doc(path).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return Fields(snap.Data()), nil
}

func (f *Firestore) WriteMerge(ctx context.Context, path string, fields Fields) error {
	_, err := f.Client.Doc(path).Set(ctx, map[string]interface{}(fields), firestore.MergeAll)
	return err
}

func (f *Firestore) Increment(ctx context.Context, path string, field string, delta int64) error {
	_, err := f.Client.Doc(path).Update(ctx, []firestore.Update{
		{Path: field, Value: firestore.Increment(delta)},
	})
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	return err
}

func (f *Firestore) Delete(ctx context.Context, path string) error {
	_, err := f.Client.Doc(path).Delete(ctx)
	return err
}

func (f *Firestore) Add(ctx context.Context, collection string, fields Fields) (string, error) {
	doc := cloneFields(fields)
	doc[CreatedAtField] = firestore.ServerTimestamp

	ref, _, err := f.Client.Collection(collection).Add(ctx, map[string]interface{}(doc))
	if err != nil {
		return "", err
	}
	return ref.ID, nil
}

func (f *Firestore) Subscribe(path string, fn func(Fields)) (CancelFunc, error) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		it := f.Client.Doc(path).Snapshots(ctx)
		defer it.Stop()
		for {
			snap, err := it.Next()
			if err != nil {
				if status.Code(err) != codes.Canceled {
					log.Printf("gateway: snapshot %s: %v", path, err)
				}
				return
			}
			if snap.Exists() {
				fn(Fields(snap.Data()))
			}
		}
	}()
	return CancelFunc(cancel), nil
}

func (f *Firestore) QueryOrderedLimited(collection string, orderField string, desc bool, limit int, fn func([]Record)) (CancelFunc, error) {
	direction := firestore.Asc
	if desc {
		direction = firestore.Desc
	}
	query := f.Client.Collection(collection).OrderBy(orderField, direction).Limit(limit)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		it := query.Snapshots(ctx)
		defer it.Stop()
		for {
			snap, err := it.Next()
			if err != nil {
				if status.Code(err) != codes.Canceled {
					log.Printf("gateway: query snapshot %s: %v", collection, err)
				}
				return
			}
			docs, err := snap.Documents.GetAll()
			if err != nil {
				log.Printf("gateway: query read %s: %v", collection, err)
				continue
			}
			records := make([]Record, 0, len(docs))
			for _, doc := range docs {
				fields := Fields(doc.Data())
				records = append(records, Record{
					ID:         doc.Ref.ID,
					Fields:     fields,
					CreateTime: FieldTime(fields, orderField),
				})
			}
			fn(records)
		}
	}()
	return CancelFunc(cancel), nil
}

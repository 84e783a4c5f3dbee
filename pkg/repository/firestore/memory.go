package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/keepsake-app/keepsake/pkg/domain/interfaces"
	"github.com/keepsake-app/keepsake/pkg/domain/model"
	"github.com/keepsake-app/keepsake/pkg/domain/types"
)

// memoryDocument is the Firestore document representation of model.Memory.
type memoryDocument struct {
	ID            string    `firestore:"id"`
	Title         string    `firestore:"title"`
	Date          time.Time `firestore:"date"`
	Description   string    `firestore:"description"`
	ImageURL      string    `firestore:"image_url"`
	ImagePublicID string    `firestore:"image_public_id"`
	Special       string    `firestore:"special"`
	CreatedAt     time.Time `firestore:"created_at"`
}

func toMemoryDocument(m *model.Memory) *memoryDocument {
	return &memoryDocument{
		ID:            string(m.ID),
		Title:         m.Title,
		Date:          m.Date,
		Description:   m.Description,
		ImageURL:      m.ImageURL,
		ImagePublicID: m.ImagePublicID,
		Special:       m.Special,
		CreatedAt:     m.CreatedAt,
	}
}

func fromMemoryDocument(d *memoryDocument) *model.Memory {
	return &model.Memory{
		ID:            types.MemoryID(d.ID),
		Title:         d.Title,
		Date:          d.Date,
		Description:   d.Description,
		ImageURL:      d.ImageURL,
		ImagePublicID: d.ImagePublicID,
		Special:       d.Special,
		CreatedAt:     d.CreatedAt,
	}
}

type memoryRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

var _ interfaces.MemoryRepository = &memoryRepository{}

func newMemoryRepository(client *firestore.Client) *memoryRepository {
	return &memoryRepository{client: client}
}

func (r *memoryRepository) collection() *firestore.CollectionRef {
	name := "memories"
	if r.collectionPrefix != "" {
		name = r.collectionPrefix + "_memories"
	}
	return r.client.Collection(name)
}

func (r *memoryRepository) Create(ctx context.Context, mem *model.Memory) (*model.Memory, error) {
	created := *mem
	if created.ID == "" {
		created.ID = types.NewMemoryID()
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	docRef := r.collection().Doc(string(created.ID))
	if _, err := docRef.Set(ctx, toMemoryDocument(&created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create memory", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *memoryRepository) Get(ctx context.Context, id types.MemoryID) (*model.Memory, error) {
	doc, err := r.collection().Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "memory not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get memory", goerr.V("id", id))
	}

	var d memoryDocument
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal memory", goerr.V("id", id))
	}

	return fromMemoryDocument(&d), nil
}

func (r *memoryRepository) List(ctx context.Context) ([]*model.Memory, error) {
	iter := r.collection().OrderBy("created_at", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	var memories []*model.Memory
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate memories")
		}

		var d memoryDocument
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal memory")
		}
		memories = append(memories, fromMemoryDocument(&d))
	}

	return memories, nil
}

func (r *memoryRepository) Update(ctx context.Context, mem *model.Memory) (*model.Memory, error) {
	docRef := r.collection().Doc(string(mem.ID))

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "memory not found", goerr.V("id", mem.ID))
		}
		return nil, goerr.Wrap(err, "failed to get memory", goerr.V("id", mem.ID))
	}

	var existing memoryDocument
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal memory", goerr.V("id", mem.ID))
	}

	updated := *mem
	updated.CreatedAt = existing.CreatedAt

	if _, err := docRef.Set(ctx, toMemoryDocument(&updated)); err != nil {
		return nil, goerr.Wrap(err, "failed to update memory", goerr.V("id", mem.ID))
	}

	return &updated, nil
}

func (r *memoryRepository) Delete(ctx context.Context, id types.MemoryID) error {
	docRef := r.collection().Doc(string(id))

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(interfaces.ErrNotFound, "memory not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get memory", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete memory", goerr.V("id", id))
	}

	return nil
}

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

// groupDocument is the Firestore document representation of model.Group.
type groupDocument struct {
	ID          string    `firestore:"id"`
	Name        string    `firestore:"name"`
	Description string    `firestore:"description"`
	MemoryIDs   []string  `firestore:"memory_ids"`
	CreatedAt   time.Time `firestore:"created_at"`
}

func toGroupDocument(g *model.Group) *groupDocument {
	memoryIDs := make([]string, len(g.MemoryIDs))
	for i, id := range g.MemoryIDs {
		memoryIDs[i] = string(id)
	}
	return &groupDocument{
		ID:          string(g.ID),
		Name:        g.Name,
		Description: g.Description,
		MemoryIDs:   memoryIDs,
		CreatedAt:   g.CreatedAt,
	}
}

func fromGroupDocument(d *groupDocument) *model.Group {
	// Firestore stores an empty slice as null; normalize to empty so the
	// memoryIds list round-trips as [] rather than nil.
	memoryIDs := make([]types.MemoryID, len(d.MemoryIDs))
	for i, id := range d.MemoryIDs {
		memoryIDs[i] = types.MemoryID(id)
	}
	return &model.Group{
		ID:          types.GroupID(d.ID),
		Name:        d.Name,
		Description: d.Description,
		MemoryIDs:   memoryIDs,
		CreatedAt:   d.CreatedAt,
	}
}

type groupRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

var _ interfaces.GroupRepository = &groupRepository{}

func newGroupRepository(client *firestore.Client) *groupRepository {
	return &groupRepository{client: client}
}

func (r *groupRepository) collection() *firestore.CollectionRef {
	name := "groups"
	if r.collectionPrefix != "" {
		name = r.collectionPrefix + "_groups"
	}
	return r.client.Collection(name)
}

func (r *groupRepository) Create(ctx context.Context, group *model.Group) (*model.Group, error) {
	created := *group
	if created.ID == "" {
		created.ID = types.NewGroupID()
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}
	if created.MemoryIDs == nil {
		created.MemoryIDs = []types.MemoryID{}
	}

	docRef := r.collection().Doc(string(created.ID))
	if _, err := docRef.Set(ctx, toGroupDocument(&created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create group", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *groupRepository) Get(ctx context.Context, id types.GroupID) (*model.Group, error) {
	doc, err := r.collection().Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "group not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get group", goerr.V("id", id))
	}

	var d groupDocument
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal group", goerr.V("id", id))
	}

	return fromGroupDocument(&d), nil
}

func (r *groupRepository) List(ctx context.Context) ([]*model.Group, error) {
	iter := r.collection().Documents(ctx)
	defer iter.Stop()

	var groups []*model.Group
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate groups")
		}

		var d groupDocument
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal group")
		}
		groups = append(groups, fromGroupDocument(&d))
	}

	return groups, nil
}

func (r *groupRepository) Update(ctx context.Context, group *model.Group) (*model.Group, error) {
	docRef := r.collection().Doc(string(group.ID))

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "group not found", goerr.V("id", group.ID))
		}
		return nil, goerr.Wrap(err, "failed to get group", goerr.V("id", group.ID))
	}

	var existing groupDocument
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal group", goerr.V("id", group.ID))
	}

	updated := *group
	updated.CreatedAt = existing.CreatedAt
	if updated.MemoryIDs == nil {
		updated.MemoryIDs = []types.MemoryID{}
	}

	if _, err := docRef.Set(ctx, toGroupDocument(&updated)); err != nil {
		return nil, goerr.Wrap(err, "failed to update group", goerr.V("id", group.ID))
	}

	return &updated, nil
}

func (r *groupRepository) Delete(ctx context.Context, id types.GroupID) error {
	docRef := r.collection().Doc(string(id))

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(interfaces.ErrNotFound, "group not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get group", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete group", goerr.V("id", id))
	}

	return nil
}

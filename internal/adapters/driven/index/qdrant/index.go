// Package qdrant provides a slide index backed by a Qdrant server
// over gRPC.
package qdrant

import (
	"context"
	"fmt"

	qdrantclient "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/ferrous-labs/deckdex-cli/internal/core/domain"
	"github.com/ferrous-labs/deckdex-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.SlideIndex = (*Index)(nil)

// Default configuration values.
const (
	DefaultAddr       = "localhost:6334"
	DefaultCollection = "deckdex_slides"

	// scrollPageSize bounds a single scroll request; GetByFilter pages
	// through as many as the limit requires.
	scrollPageSize = 256
)

// payloadText holds the slide body; it is stored but never filtered on.
const payloadText = "text"

// Config holds configuration for the Qdrant slide index.
type Config struct {
	// Addr is the Qdrant gRPC address (default: localhost:6334).
	Addr string

	// Collection is the collection name (default: deckdex_slides).
	Collection string
}

// Index stores slide records as Qdrant points. The vector carries the
// embedding; everything else travels in the point payload.
type Index struct {
	conn        *grpc.ClientConn
	collections qdrantclient.CollectionsClient
	points      qdrantclient.PointsClient
	collection  string
}

// NewIndex connects to a Qdrant server.
func NewIndex(cfg Config) (*Index, error) {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}

	conn, err := grpc.Dial(cfg.Addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("qdrant: connect %s: %w", cfg.Addr, err)
	}

	return &Index{
		conn:        conn,
		collections: qdrantclient.NewCollectionsClient(conn),
		points:      qdrantclient.NewPointsClient(conn),
		collection:  cfg.Collection,
	}, nil
}

// EnsureCollection creates the collection with cosine distance if it
// does not exist yet.
func (x *Index) EnsureCollection(ctx context.Context, dimensions int) error {
	existing, err := x.collections.List(ctx, &qdrantclient.ListCollectionsRequest{})
	if err != nil {
		return fmt.Errorf("%w: list collections: %w", domain.ErrIndexOperation, err)
	}
	for _, col := range existing.GetCollections() {
		if col.GetName() == x.collection {
			return nil
		}
	}

	_, err = x.collections.Create(ctx, &qdrantclient.CreateCollection{
		CollectionName: x.collection,
		VectorsConfig: &qdrantclient.VectorsConfig{
			Config: &qdrantclient.VectorsConfig_Params{
				Params: &qdrantclient.VectorParams{
					Size:     uint64(dimensions),
					Distance: qdrantclient.Distance_Cosine,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("%w: create collection %s: %w", domain.ErrIndexOperation, x.collection, err)
	}
	return nil
}

// Insert stores a batch of records as one upsert.
func (x *Index) Insert(ctx context.Context, records []domain.SlideRecord) error {
	if len(records) == 0 {
		return nil
	}

	points := make([]*qdrantclient.PointStruct, 0, len(records))
	for _, rec := range records {
		points = append(points, &qdrantclient.PointStruct{
			Id: &qdrantclient.PointId{
				PointIdOptions: &qdrantclient.PointId_Uuid{Uuid: rec.ID},
			},
			Vectors: &qdrantclient.Vectors{
				VectorsOptions: &qdrantclient.Vectors_Vector{
					Vector: &qdrantclient.Vector{Data: rec.Embedding},
				},
			},
			Payload: recordPayload(rec),
		})
	}

	_, err := x.points.Upsert(ctx, &qdrantclient.UpsertPoints{
		CollectionName: x.collection,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("%w: upsert %d points: %w", domain.ErrIndexOperation, len(points), err)
	}
	return nil
}

// Query returns up to topK nearest records by cosine distance,
// ascending.
func (x *Index) Query(ctx context.Context, vector []float32, topK int, filter driven.Filter) ([]domain.SlideHit, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	qf, err := translateFilter(filter)
	if err != nil {
		return nil, err
	}

	resp, err := x.points.Search(ctx, &qdrantclient.SearchPoints{
		CollectionName: x.collection,
		Vector:         vector,
		Limit:          uint64(topK),
		Filter:         qf,
		WithPayload: &qdrantclient.WithPayloadSelector{
			SelectorOptions: &qdrantclient.WithPayloadSelector_Enable{Enable: true},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: search: %w", domain.ErrIndexOperation, err)
	}

	hits := make([]domain.SlideHit, 0, len(resp.GetResult()))
	for _, point := range resp.GetResult() {
		rec := payloadRecord(pointUUID(point.GetId()), point.GetPayload())
		hits = append(hits, domain.SlideHit{
			ID:           rec.ID,
			SourceName:   rec.SourceName,
			SlideLocalID: rec.SlideLocalID,
			SlideIndex:   rec.SlideIndex,
			Title:        rec.Title,
			Text:         rec.Text,
			Tags:         rec.Tags,
			// Cosine similarity scores descend; report ascending distance.
			Distance: 1 - float64(point.GetScore()),
		})
	}
	return hits, nil
}

// GetByFilter scrolls matching records without any vector involved.
func (x *Index) GetByFilter(ctx context.Context, filter driven.Filter, limit int) ([]domain.SlideRecord, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	qf, err := translateFilter(filter)
	if err != nil {
		return nil, err
	}

	var records []domain.SlideRecord
	var offset *qdrantclient.PointId
	for {
		page := uint32(scrollPageSize)
		if limit > 0 && limit-len(records) < scrollPageSize {
			page = uint32(limit - len(records))
		}

		resp, err := x.points.Scroll(ctx, &qdrantclient.ScrollPoints{
			CollectionName: x.collection,
			Filter:         qf,
			Limit:          &page,
			Offset:         offset,
			WithPayload: &qdrantclient.WithPayloadSelector{
				SelectorOptions: &qdrantclient.WithPayloadSelector_Enable{Enable: true},
			},
			WithVectors: &qdrantclient.WithVectorsSelector{
				SelectorOptions: &qdrantclient.WithVectorsSelector_Enable{Enable: true},
			},
		})
		if err != nil {
			return nil, fmt.Errorf("%w: scroll: %w", domain.ErrIndexOperation, err)
		}

		for _, point := range resp.GetResult() {
			rec := payloadRecord(pointUUID(point.GetId()), point.GetPayload())
			rec.Embedding = point.GetVectors().GetVector().GetData()
			records = append(records, rec)
		}

		offset = resp.GetNextPageOffset()
		if offset == nil || (limit > 0 && len(records) >= limit) {
			break
		}
	}

	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// DeleteByFilter removes every record matching the filter.
func (x *Index) DeleteByFilter(ctx context.Context, filter driven.Filter) error {
	if err := filter.Validate(); err != nil {
		return err
	}

	qf, err := translateFilter(filter)
	if err != nil {
		return err
	}

	_, err = x.points.Delete(ctx, &qdrantclient.DeletePoints{
		CollectionName: x.collection,
		Points: &qdrantclient.PointsSelector{
			PointsSelectorOneOf: &qdrantclient.PointsSelector_Filter{Filter: qf},
		},
	})
	if err != nil {
		return fmt.Errorf("%w: delete by filter: %w", domain.ErrIndexOperation, err)
	}
	return nil
}

// Close releases the gRPC connection.
func (x *Index) Close() error {
	if x.conn == nil {
		return nil
	}
	return x.conn.Close()
}

// translateFilter converts an exact-match filter into a Qdrant must
// conjunction. A nil or empty filter matches everything.
func translateFilter(filter driven.Filter) (*qdrantclient.Filter, error) {
	if len(filter) == 0 {
		return nil, nil
	}

	must := make([]*qdrantclient.Condition, 0, len(filter))
	for key, value := range filter {
		var match *qdrantclient.Match
		switch v := value.(type) {
		case string:
			match = &qdrantclient.Match{
				MatchValue: &qdrantclient.Match_Keyword{Keyword: v},
			}
		case int:
			match = &qdrantclient.Match{
				MatchValue: &qdrantclient.Match_Integer{Integer: int64(v)},
			}
		case int64:
			match = &qdrantclient.Match{
				MatchValue: &qdrantclient.Match_Integer{Integer: v},
			}
		case float64:
			match = &qdrantclient.Match{
				MatchValue: &qdrantclient.Match_Integer{Integer: int64(v)},
			}
		default:
			return nil, fmt.Errorf("%w: field %q has type %T", domain.ErrNonScalarMetadata, key, value)
		}
		must = append(must, &qdrantclient.Condition{
			ConditionOneOf: &qdrantclient.Condition_Field{
				Field: &qdrantclient.FieldCondition{
					Key:   key,
					Match: match,
				},
			},
		})
	}
	return &qdrantclient.Filter{Must: must}, nil
}

// recordPayload flattens a record into point payload. Tags are stored
// as a single joined string so every payload value stays scalar.
func recordPayload(rec domain.SlideRecord) map[string]*qdrantclient.Value {
	return map[string]*qdrantclient.Value{
		driven.FieldSourceName: stringValue(rec.SourceName),
		driven.FieldSourceBase: stringValue(rec.SourceBase),
		driven.FieldSlideID:    stringValue(rec.SlideLocalID),
		driven.FieldSlideIndex: {Kind: &qdrantclient.Value_IntegerValue{IntegerValue: int64(rec.SlideIndex)}},
		driven.FieldTitle:      stringValue(rec.Title),
		driven.FieldTags:       stringValue(rec.Tags.String()),
		driven.FieldIndexedAt:  stringValue(rec.IndexedAt),
		payloadText:            stringValue(rec.Text),
	}
}

// payloadRecord rebuilds a record from point payload.
func payloadRecord(id string, payload map[string]*qdrantclient.Value) domain.SlideRecord {
	return domain.SlideRecord{
		ID:           id,
		SourceName:   payload[driven.FieldSourceName].GetStringValue(),
		SourceBase:   payload[driven.FieldSourceBase].GetStringValue(),
		SlideIndex:   int(payload[driven.FieldSlideIndex].GetIntegerValue()),
		SlideLocalID: payload[driven.FieldSlideID].GetStringValue(),
		Title:        payload[driven.FieldTitle].GetStringValue(),
		Text:         payload[payloadText].GetStringValue(),
		Tags:         domain.ParseTagSet(payload[driven.FieldTags].GetStringValue()),
		IndexedAt:    payload[driven.FieldIndexedAt].GetStringValue(),
	}
}

func stringValue(s string) *qdrantclient.Value {
	return &qdrantclient.Value{Kind: &qdrantclient.Value_StringValue{StringValue: s}}
}

func pointUUID(id *qdrantclient.PointId) string {
	if id == nil {
		return ""
	}
	return id.GetUuid()
}

package archive

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/maxturnos/turnos-service/internal/config"
	"github.com/maxturnos/turnos-service/internal/domain"
	"github.com/maxturnos/turnos-service/pkg/types"
)

const (
	defaultDatabase   = "maxturnos"
	defaultCollection = "reservas_historicas"
)

// Archive хранилище прошедших бронирований
type Archive interface {
	Store(ctx context.Context, bookings []*domain.Booking) error
	ListMonth(ctx context.Context, businessCode string, year int, month time.Month) ([]*domain.Booking, error)
	Close(ctx context.Context) error
}

// document формат документа в коллекции архива
type document struct {
	BookingID        int64      `bson:"_id"`
	BusinessCode     string     `bson:"business_code"`
	Date             string     `bson:"fecha"`
	Month            string     `bson:"mes"`
	StartTime        string     `bson:"hora"`
	Status           string     `bson:"estado"`
	ServiceID        int64      `bson:"servicio_id"`
	ServiceName      string     `bson:"servicio"`
	ServiceDuration  string     `bson:"duracion"`
	ServicePrice     string     `bson:"precio"`
	DurationMinutes  int        `bson:"duracion_minutos"`
	StaffID          int64      `bson:"profesional_id"`
	StaffName        string     `bson:"profesional"`
	CustomerEmail    string     `bson:"email"`
	CustomerName     *string    `bson:"nombre,omitempty"`
	Note             *string    `bson:"nota,omitempty"`
	CancellationNote *string    `bson:"nota_cancelacion,omitempty"`
	CancelledAt      *time.Time `bson:"cancelada_en,omitempty"`
	CreatedAt        time.Time  `bson:"creada_en"`
	ArchivedAt       time.Time  `bson:"archivada_en"`
}

// MongoArchive архив в MongoDB, идентификатор документа = ID бронирования
type MongoArchive struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// New подключается к MongoDB. Пустой URI выключает архив (NopArchive).
func New(ctx context.Context, cfg config.MongoConfig) (Archive, error) {
	if cfg.URI == "" {
		return NopArchive{}, nil
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := cfg.Database
	if db == "" {
		db = defaultDatabase
	}
	coll := cfg.Collection
	if coll == "" {
		coll = defaultCollection
	}

	collection := client.Database(db).Collection(coll)
	_, err = collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "business_code", Value: 1}, {Key: "mes", Value: 1}},
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("create archive index: %w", err)
	}

	return &MongoArchive{client: client, collection: collection}, nil
}

// Store переносит бронирования в архив. Повторная запись того же ID перезаписывает документ.
func (a *MongoArchive) Store(ctx context.Context, bookings []*domain.Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	now := time.Now()
	models := make([]mongo.WriteModel, 0, len(bookings))
	for _, b := range bookings {
		doc := toDocument(b, now)
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": doc.BookingID}).
			SetReplacement(doc).
			SetUpsert(true))
	}

	if _, err := a.collection.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false)); err != nil {
		return fmt.Errorf("archive bulk write: %w", err)
	}
	return nil
}

// ListMonth архивные бронирования бизнеса за месяц
func (a *MongoArchive) ListMonth(ctx context.Context, businessCode string, year int, month time.Month) ([]*domain.Booking, error) {
	filter := bson.M{"business_code": businessCode, "mes": monthKey(year, month)}
	opts := options.Find().SetSort(bson.D{{Key: "fecha", Value: 1}, {Key: "hora", Value: 1}})

	cur, err := a.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("archive find: %w", err)
	}
	defer cur.Close(ctx)

	var docs []document
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("archive decode: %w", err)
	}

	result := make([]*domain.Booking, 0, len(docs))
	for i := range docs {
		b, err := fromDocument(&docs[i])
		if err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	return result, nil
}

func (a *MongoArchive) Close(ctx context.Context) error {
	return a.client.Disconnect(ctx)
}

func toDocument(b *domain.Booking, archivedAt time.Time) document {
	return document{
		BookingID:        b.ID,
		BusinessCode:     b.BusinessCode,
		Date:             b.BookingDate.Format(domain.DateFormat),
		Month:            monthKey(b.BookingDate.Year(), b.BookingDate.Month()),
		StartTime:        b.StartTime.String(),
		Status:           string(b.Status),
		ServiceID:        b.ServiceID,
		ServiceName:      b.ServiceName,
		ServiceDuration:  b.ServiceDuration,
		ServicePrice:     b.ServicePrice,
		DurationMinutes:  b.DurationMinutes,
		StaffID:          b.StaffID,
		StaffName:        b.StaffName,
		CustomerEmail:    b.CustomerEmail,
		CustomerName:     b.CustomerName,
		Note:             b.Note,
		CancellationNote: b.CancellationNote,
		CancelledAt:      b.CancelledAt,
		CreatedAt:        b.CreatedAt,
		ArchivedAt:       archivedAt,
	}
}

func fromDocument(d *document) (*domain.Booking, error) {
	day, err := time.ParseInLocation(domain.DateFormat, d.Date, time.Local)
	if err != nil {
		return nil, fmt.Errorf("archive document %d: bad date %q: %w", d.BookingID, d.Date, err)
	}
	start, err := types.NewTimeStringFromString(d.StartTime)
	if err != nil {
		return nil, fmt.Errorf("archive document %d: bad time %q: %w", d.BookingID, d.StartTime, err)
	}
	return &domain.Booking{
		ID:               d.BookingID,
		BusinessCode:     d.BusinessCode,
		BookingDate:      day,
		StartTime:        start,
		Status:           domain.BookingStatus(d.Status),
		ServiceID:        d.ServiceID,
		ServiceName:      d.ServiceName,
		ServiceDuration:  d.ServiceDuration,
		ServicePrice:     d.ServicePrice,
		DurationMinutes:  d.DurationMinutes,
		StaffID:          d.StaffID,
		StaffName:        d.StaffName,
		CustomerEmail:    d.CustomerEmail,
		CustomerName:     d.CustomerName,
		Note:             d.Note,
		CancellationNote: d.CancellationNote,
		CancelledAt:      d.CancelledAt,
		CreatedAt:        d.CreatedAt,
	}, nil
}

func monthKey(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

// NopArchive архив выключен
type NopArchive struct{}

func (NopArchive) Store(context.Context, []*domain.Booking) error { return nil }
func (NopArchive) ListMonth(context.Context, string, int, time.Month) ([]*domain.Booking, error) {
	return nil, nil
}
func (NopArchive) Close(context.Context) error { return nil }

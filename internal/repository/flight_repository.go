package repository

import (
	"context"
	"errors"
	"time"

	models "github.com/seatwise/seatwise/internal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type FlightRepository struct {
	col *mongo.Collection
}

func NewFlightRepository(db *mongo.Database) *FlightRepository {
	return &FlightRepository{col: db.Collection("flights")}
}

func (r *FlightRepository) Create(ctx context.Context, flight *models.Flight) error {
	_, err := r.col.InsertOne(ctx, flight)
	return err
}

func (r *FlightRepository) GetByID(ctx context.Context, id string) (*models.Flight, error) {
	var flight models.Flight
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&flight)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrFlightNotFound
		}
		return nil, err
	}
	return &flight, nil
}

func (r *FlightRepository) List(ctx context.Context) ([]models.Flight, error) {
	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "journeyDate", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	flights := make([]models.Flight, 0)
	if err := cursor.All(ctx, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (r *FlightRepository) Update(ctx context.Context, id string, update models.FlightUpdate) error {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.FlightName != nil {
		set["flightName"] = *update.FlightName
	}
	if update.FlightCode != nil {
		set["flightCode"] = *update.FlightCode
	}
	if update.Origin != nil {
		set["origin"] = *update.Origin
	}
	if update.Destination != nil {
		set["destination"] = *update.Destination
	}
	if update.DepartureTime != nil {
		set["departureTime"] = *update.DepartureTime
	}
	if update.ArrivalTime != nil {
		set["arrivalTime"] = *update.ArrivalTime
	}
	if update.JourneyDate != nil {
		set["journeyDate"] = *update.JourneyDate
	}
	if update.BasePrice != nil {
		set["basePrice"] = *update.BasePrice
	}
	if update.TotalSeats != nil {
		set["totalSeats"] = *update.TotalSeats
	}
	if update.AvailableSeats != nil {
		set["availableSeats"] = *update.AvailableSeats
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrFlightNotFound
	}
	return nil
}

// DecrementSeats is the storage-level guard against overcommit: the filter
// only matches while at least n seats remain, so concurrent bookings can
// never drive availableSeats below zero.
func (r *FlightRepository) DecrementSeats(ctx context.Context, id string, n int) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "availableSeats": bson.M{"$gte": n}},
		bson.M{
			"$inc": bson.M{"availableSeats": -n},
			"$set": bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		count, err := r.col.CountDocuments(ctx, bson.M{"_id": id})
		if err != nil {
			return err
		}
		if count == 0 {
			return models.ErrFlightNotFound
		}
		return models.ErrInsufficientSeats
	}
	return nil
}

// IncrementSeats restores n seats, clamped at totalSeats so a repeated or
// spurious restore cannot push availability past capacity.
func (r *FlightRepository) IncrementSeats(ctx context.Context, id string, n int) error {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "availableSeats", Value: bson.D{{Key: "$min", Value: bson.A{
				bson.D{{Key: "$add", Value: bson.A{"$availableSeats", n}}},
				"$totalSeats",
			}}}},
			{Key: "updatedAt", Value: "$$NOW"},
		}}},
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, pipeline)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrFlightNotFound
	}
	return nil
}

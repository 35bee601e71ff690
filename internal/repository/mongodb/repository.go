package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/shiftreport/internal/domain/models"
)

const (
	reportsCollection   = "shift_reports"
	employeesCollection = "employees"
)

// MongoDBRepository stores reports and employees in MongoDB.
type MongoDBRepository struct {
	client *mongo.Client
	dbName string
}

// NewMongoDBRepository connects, pings and ensures the slot uniqueness index.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	r := &MongoDBRepository{client: client, dbName: dbName}

	_, err = r.reports().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "employee_id", Value: 1}, {Key: "shift", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("report_slot"),
		},
		{Keys: bson.D{{Key: "date", Value: 1}}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create report indexes: %w", err)
	}

	_, err = r.employees().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create employee index: %w", err)
	}

	return r, nil
}

func (r *MongoDBRepository) reports() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(reportsCollection)
}

func (r *MongoDBRepository) employees() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(employeesCollection)
}

// ListReports returns reports matching the filter in insertion order.
func (r *MongoDBRepository) ListReports(ctx context.Context, filter models.ReportFilter) ([]models.ShiftReport, error) {
	opts := options.Find().SetSort(bson.D{{Key: "$natural", Value: 1}})
	cursor, err := r.reports().Find(ctx, reportQuery(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}

	reports := make([]models.ShiftReport, 0)
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, fmt.Errorf("failed to decode reports: %w", err)
	}
	return reports, nil
}

// GetReport loads a single report by id.
func (r *MongoDBRepository) GetReport(ctx context.Context, id string) (models.ShiftReport, error) {
	var report models.ShiftReport
	err := r.reports().FindOne(ctx, bson.M{"_id": id}).Decode(&report)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.ShiftReport{}, fmt.Errorf("%w: report %s", models.ErrNotFound, id)
	}
	if err != nil {
		return models.ShiftReport{}, fmt.Errorf("failed to load report %s: %w", id, err)
	}
	return report, nil
}

// UpsertReport replaces the document occupying the report's slot, keeping its _id.
func (r *MongoDBRepository) UpsertReport(ctx context.Context, report models.ShiftReport) (models.ShiftReport, error) {
	slot := bson.M{"employee_id": report.EmployeeID, "shift": report.Shift, "date": report.Date}

	var existing models.ShiftReport
	err := r.reports().FindOne(ctx, slot).Decode(&existing)
	switch {
	case err == nil:
		report.ID = existing.ID
	case !errors.Is(err, mongo.ErrNoDocuments):
		return models.ShiftReport{}, fmt.Errorf("failed to look up report slot: %w", err)
	}

	_, err = r.reports().ReplaceOne(ctx, bson.M{"_id": report.ID}, report, options.Replace().SetUpsert(true))
	if err != nil {
		return models.ShiftReport{}, fmt.Errorf("failed to upsert report: %w", err)
	}
	return report, nil
}

// DeleteReport removes a report by id.
func (r *MongoDBRepository) DeleteReport(ctx context.Context, id string) error {
	res, err := r.reports().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete report %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: report %s", models.ErrNotFound, id)
	}
	return nil
}

// ListEmployees returns every employee.
func (r *MongoDBRepository) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	cursor, err := r.employees().Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}

	employees := make([]models.Employee, 0)
	if err := cursor.All(ctx, &employees); err != nil {
		return nil, fmt.Errorf("failed to decode employees: %w", err)
	}
	return employees, nil
}

// SaveEmployee inserts or replaces an employee by username.
func (r *MongoDBRepository) SaveEmployee(ctx context.Context, employee models.Employee) error {
	var existing models.Employee
	err := r.employees().FindOne(ctx, bson.M{"username": employee.Username}).Decode(&existing)
	switch {
	case err == nil:
		employee.ID = existing.ID
	case !errors.Is(err, mongo.ErrNoDocuments):
		return fmt.Errorf("failed to look up employee: %w", err)
	}

	_, err = r.employees().ReplaceOne(ctx, bson.M{"_id": employee.ID}, employee, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save employee: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func reportQuery(filter models.ReportFilter) bson.M {
	q := bson.M{}
	if filter.EmployeeID != "" {
		q["employee_id"] = filter.EmployeeID
	}
	if filter.Shift != "" {
		q["shift"] = filter.Shift
	}
	switch {
	case filter.Date != "":
		q["date"] = filter.Date
	case filter.From != "" || filter.To != "":
		rng := bson.M{}
		if filter.From != "" {
			rng["$gte"] = filter.From
		}
		if filter.To != "" {
			rng["$lte"] = filter.To
		}
		q["date"] = rng
	}
	return q
}

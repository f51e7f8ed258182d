package config

import (
    "context"
    "log"
    "os"
    "time"

    "go.mongodb.org/mongo-driver/mongo"
    "go.mongodb.org/mongo-driver/mongo/options"
)

var (
    Client                    *mongo.Client
    UserCollection            *mongo.Collection
    BookingCollection         *mongo.Collection
    OrderCollection           *mongo.Collection
    ProductCollection         *mongo.Collection
    InventoryCollection       *mongo.Collection
    StockMovementCollection   *mongo.Collection
    FinancialRecordCollection *mongo.Collection
    DailySummaryCollection    *mongo.Collection
    MessageCollection         *mongo.Collection
    TestimonialCollection     *mongo.Collection
    SubscriptionCollection    *mongo.Collection
)

func ConnectDatabase() {
    client, err := mongo.NewClient(options.Client().ApplyURI(os.Getenv("MONGO_URI")))
    if err != nil {
        log.Fatal(err)
    }

    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()

    err = client.Connect(ctx)
    if err != nil {
        log.Fatal(err)
    }

    err = client.Ping(ctx, nil)
    if err != nil {
        log.Fatal(err)
    }

    Client = client
    db := os.Getenv("MONGO_DB")
    if db == "" {
        db = "restaurant"
    }

    UserCollection = client.Database(db).Collection("users")
    BookingCollection = client.Database(db).Collection("bookings")
    OrderCollection = client.Database(db).Collection("orders")
    ProductCollection = client.Database(db).Collection("products")
    InventoryCollection = client.Database(db).Collection("inventories")
    StockMovementCollection = client.Database(db).Collection("stockmovements")
    FinancialRecordCollection = client.Database(db).Collection("financialrecords")
    DailySummaryCollection = client.Database(db).Collection("dailysummaries")
    MessageCollection = client.Database(db).Collection("messages")
    TestimonialCollection = client.Database(db).Collection("testimonials")
    SubscriptionCollection = client.Database(db).Collection("subscriptions")

    log.Println("Connected to MongoDB")
}

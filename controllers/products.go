package controllers

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"time"

	"backend/config"
	"backend/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateProduct registers a product and seeds an empty inventory record
// for it. SKU and profit margin are generated server side.
func CreateProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid product data", "error": err.Error()})
		return
	}

	now := time.Now()
	product.ID = primitive.NewObjectID()
	if product.SKU == "" {
		product.SKU = models.GenerateSKU(product.Category)
	}
	product.ProfitMargin = models.ComputeProfitMargin(product.CostPrice, product.SellingPrice)
	product.IsActive = true
	product.CreatedAt = now
	product.UpdatedAt = now

	if userID, ok := c.Get("userID"); ok {
		if oid, err := primitive.ObjectIDFromHex(userID.(string)); err == nil {
			product.CreatedBy = &oid
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := config.ProductCollection.InsertOne(ctx, product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error creating product", "error": err.Error()})
		return
	}

	maximumStock := product.OptimalStock
	if maximumStock == 0 {
		maximumStock = 1000
	}
	inventory := models.Inventory{
		ID:           primitive.NewObjectID(),
		Product:      product.ID,
		CurrentStock: 0,
		MinimumStock: product.ReorderPoint,
		MaximumStock: maximumStock,
		StockStatus:  "out_of_stock",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := config.InventoryCollection.InsertOne(ctx, inventory); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error creating product inventory", "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Product created successfully",
		"data":    gin.H{"product": product},
	})
}

func GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 {
		limit = 10
	}

	filter := bson.M{}
	if category := c.Query("category"); category != "" {
		filter["category"] = category
	}
	if active := c.Query("active"); active != "" {
		filter["is_active"] = active == "true"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	total, err := config.ProductCollection.CountDocuments(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching products", "error": err.Error()})
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(int64((page - 1) * limit))

	cursor, err := config.ProductCollection.Find(ctx, filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching products", "error": err.Error()})
		return
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching products", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": len(products),
		"data": gin.H{
			"products": products,
			"pagination": gin.H{
				"current": page,
				"pages":   int(math.Ceil(float64(total) / float64(limit))),
				"total":   total,
			},
		},
	})
}

// GetProduct returns one product together with its inventory record.
func GetProduct(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid product ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var product models.Product
	err = config.ProductCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching product", "error": err.Error()})
		return
	}

	var inventory *models.Inventory
	var inv models.Inventory
	if err := config.InventoryCollection.FindOne(ctx, bson.M{"product": id}).Decode(&inv); err == nil {
		inventory = &inv
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"product":   product,
			"inventory": inventory,
		},
	})
}

func UpdateProduct(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid product ID"})
		return
	}

	var input bson.M
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid product data", "error": err.Error()})
		return
	}
	delete(input, "_id")
	delete(input, "id")
	input["updated_at"] = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var product models.Product
	err = config.ProductCollection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": input}, opts).Decode(&product)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error updating product", "error": err.Error()})
		return
	}

	// Keep the margin in sync when either price moved.
	margin := models.ComputeProfitMargin(product.CostPrice, product.SellingPrice)
	if margin != product.ProfitMargin {
		product.ProfitMargin = margin
		config.ProductCollection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"profit_margin": margin}})
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Product updated successfully",
		"data":    gin.H{"product": product},
	})
}

// DeleteProduct removes a product and its inventory record.
func DeleteProduct(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid product ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := config.ProductCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error deleting product", "error": err.Error()})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Product not found"})
		return
	}

	config.InventoryCollection.DeleteOne(ctx, bson.M{"product": id})

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Product deleted successfully", "data": nil})
}

func GetProductsByCategory(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit < 1 {
		limit = 50
	}

	filter := bson.M{
		"category":  c.Param("category"),
		"is_active": true,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	total, err := config.ProductCollection.CountDocuments(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching products by category", "error": err.Error()})
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(int64((page - 1) * limit))

	cursor, err := config.ProductCollection.Find(ctx, filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching products by category", "error": err.Error()})
		return
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching products by category", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": len(products),
		"data": gin.H{
			"products": products,
			"pagination": gin.H{
				"current": page,
				"pages":   int(math.Ceil(float64(total) / float64(limit))),
				"total":   total,
			},
		},
	})
}

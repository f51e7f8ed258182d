package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	"backend/config"
	"backend/models"
	"backend/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// slotLocks serializes capacity check and insert per date+time slot.
// One process serves the API, so a local mutex is enough to keep a
// slot from going over capacity.
var slotLocks sync.Map

func lockSlot(date time.Time, slot string) *sync.Mutex {
	key := fmt.Sprintf("%s|%s", date.Format("2006-01-02"), slot)
	mu, _ := slotLocks.LoadOrStore(key, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func activeStatuses() bson.M {
	return bson.M{"$in": []string{"pending", "confirmed"}}
}

// CreateBooking reserves a spot in a time slot, then emails the
// customer and the admin.
func CreateBooking(c *gin.Context) {
	var input models.BookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid booking data", "error": err.Error()})
		return
	}

	if !models.IsValidTimeSlot(input.Time) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid time slot selected"})
		return
	}

	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid date format"})
		return
	}

	mu := lockSlot(date, input.Time)
	mu.Lock()
	defer mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	slotFilter := bson.M{
		"date":   date,
		"time":   input.Time,
		"status": activeStatuses(),
	}

	count, err := config.BookingCollection.CountDocuments(ctx, slotFilter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error creating booking", "error": err.Error()})
		return
	}
	if count >= models.SlotCapacity {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Sorry, this time slot is fully booked. Please choose another time."})
		return
	}

	duplicateFilter := bson.M{
		"date":   date,
		"time":   input.Time,
		"email":  input.Email,
		"status": activeStatuses(),
	}
	var duplicate models.Booking
	err = config.BookingCollection.FindOne(ctx, duplicateFilter).Decode(&duplicate)
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "You already have a booking for this time slot."})
		return
	}
	if err != mongo.ErrNoDocuments {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error creating booking", "error": err.Error()})
		return
	}

	now := time.Now()
	booking := models.Booking{
		ID:              primitive.NewObjectID(),
		Service:         input.Service,
		Date:            date,
		Time:            input.Time,
		Guests:          input.Guests,
		Name:            input.Name,
		Email:           input.Email,
		Phone:           input.Phone,
		SpecialRequests: input.SpecialRequests,
		Status:          "pending",
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if _, err := config.BookingCollection.InsertOne(ctx, booking); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error creating booking", "error": err.Error()})
		return
	}

	if err := utils.SendBookingConfirmation(booking); err != nil {
		log.Printf("Booking confirmation email failed: %v", err)
	}
	if err := utils.SendAdminBookingNotification(booking); err != nil {
		log.Printf("Admin booking notification failed: %v", err)
	}

	remainingSpots := models.SlotCapacity - int(count) - 1

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": fmt.Sprintf("Booking created successfully! %d spots remaining in this time slot. Confirmation email sent.", remainingSpots),
		"data":    booking,
		"slotInfo": gin.H{
			"time":           input.Time,
			"remainingSpots": remainingSpots,
			"isAlmostFull":   remainingSpots <= 2,
		},
	})
}

// GetAllBookings lists bookings, optionally filtered by status, service
// and date range.
func GetAllBookings(c *gin.Context) {
	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}
	if service := c.Query("service"); service != "" {
		filter["service"] = service
	}

	dateFilter := bson.M{}
	if startDate := c.Query("startDate"); startDate != "" {
		if start, err := time.Parse("2006-01-02", startDate); err == nil {
			dateFilter["$gte"] = start
		}
	}
	if endDate := c.Query("endDate"); endDate != "" {
		if end, err := time.Parse("2006-01-02", endDate); err == nil {
			dateFilter["$lte"] = end
		}
	}
	if len(dateFilter) > 0 {
		filter["date"] = dateFilter
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}})
	cursor, err := config.BookingCollection.Find(ctx, filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching bookings", "error": err.Error()})
		return
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching bookings", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(bookings),
		"data":    bookings,
	})
}

func GetBookingByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid booking ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var booking models.Booking
	err = config.BookingCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Booking not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching booking", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": booking})
}

func UpdateBookingStatus(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid booking ID"})
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Status is required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": input.Status, "updated_at": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var booking models.Booking
	err = config.BookingCollection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Booking not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error updating booking", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Booking status updated successfully",
		"data":    booking,
	})
}

func DeleteBooking(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid booking ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := config.BookingCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error deleting booking", "error": err.Error()})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Booking not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Booking deleted successfully"})
}

// GetAvailableSlots reports per-slot occupancy for a given date.
func GetAvailableSlots(c *gin.Context) {
	date, err := time.Parse("2006-01-02", c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid date format"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := config.BookingCollection.Find(ctx, bson.M{
		"date":   date,
		"status": activeStatuses(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching available slots", "error": err.Error()})
		return
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching available slots", "error": err.Error()})
		return
	}

	counts := make(map[string]int, len(models.TimeSlots))
	for _, slot := range models.TimeSlots {
		counts[slot] = 0
	}
	for _, b := range bookings {
		if _, ok := counts[b.Time]; ok {
			counts[b.Time]++
		}
	}

	details := models.ClassifySlots(counts)

	availableSlots := []string{}
	fullyBookedSlots := []string{}
	limitedSlots := []gin.H{}
	for _, d := range details {
		if d.Status != "fully-booked" {
			availableSlots = append(availableSlots, d.Time)
		} else {
			fullyBookedSlots = append(fullyBookedSlots, d.Time)
		}
		if d.Status == "limited" {
			limitedSlots = append(limitedSlots, gin.H{
				"time":      d.Time,
				"booked":    d.Booked,
				"remaining": d.Remaining,
			})
		}
	}

	totalCapacity := len(models.TimeSlots) * models.SlotCapacity
	totalBooked := len(bookings)
	totalAvailable := len(availableSlots)*models.SlotCapacity - totalBooked
	occupancyRate := float64(totalBooked) / float64(totalCapacity) * 100

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"date":             c.Param("date"),
		"availableSlots":   availableSlots,
		"fullyBookedSlots": fullyBookedSlots,
		"limitedSlots":     limitedSlots,
		"slotDetails":      details,
		"statistics": gin.H{
			"totalSlots":      len(models.TimeSlots),
			"totalCapacity":   totalCapacity,
			"totalBooked":     totalBooked,
			"totalAvailable":  totalAvailable,
			"bookedCount":     len(fullyBookedSlots),
			"availableCount":  len(availableSlots),
			"limitedCount":    len(limitedSlots),
			"occupancyRate":   fmt.Sprintf("%.2f%%", occupancyRate),
			"slotUtilization": fmt.Sprintf("%.2f%%", occupancyRate),
		},
	})
}

func bookingDateRange(c *gin.Context) (time.Time, time.Time, string) {
	period := c.DefaultQuery("period", "month")
	now := time.Now()

	if startDate := c.Query("startDate"); startDate != "" {
		if endDate := c.Query("endDate"); endDate != "" {
			start, err1 := time.Parse("2006-01-02", startDate)
			end, err2 := time.Parse("2006-01-02", endDate)
			if err1 == nil && err2 == nil {
				return start, end, period
			}
		}
	}

	switch period {
	case "today":
		start, end := utils.DayRange(now)
		return start, end, period
	case "week":
		start, end := utils.WeekRange(now)
		return start, end, period
	case "year":
		start, end := utils.YearRange(now.Year(), now.Location())
		return start, end, period
	default:
		start, end := utils.MonthRange(now)
		return start, end, period
	}
}

// GetBookingStats aggregates bookings over a period into summary,
// breakdown and analytics blocks.
func GetBookingStats(c *gin.Context) {
	start, end, period := bookingDateRange(c)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	dateRange := bson.M{"$gte": start, "$lte": end}

	totalBookings, err := config.BookingCollection.CountDocuments(ctx, bson.M{"date": dateRange})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching booking statistics", "error": err.Error()})
		return
	}

	if totalBookings == 0 {
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"period":    period,
			"dateRange": gin.H{"start": start, "end": end},
			"summary": gin.H{
				"totalBookings":       0,
				"totalGuests":         0,
				"averageGuests":       0,
				"maxGuests":           0,
				"cancellationRate":    "0%",
				"projectedRevenue":    0,
				"averageBookingValue": 0,
			},
			"breakdown": gin.H{
				"byStatus":         []gin.H{},
				"byService":        []gin.H{},
				"dailyTrends":      []gin.H{},
				"popularTimeSlots": []gin.H{},
			},
			"analytics": gin.H{
				"occupancyRate":      "0%",
				"peakHours":          []gin.H{},
				"mostPopularService": nil,
			},
		})
		return
	}

	cursor, err := config.BookingCollection.Find(ctx, bson.M{"date": dateRange})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching booking statistics", "error": err.Error()})
		return
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching booking statistics", "error": err.Error()})
		return
	}

	byStatus := map[string]int{}
	type serviceAgg struct {
		count       int
		totalGuests int
	}
	byService := map[string]*serviceAgg{}
	type dayAgg struct {
		count       int
		totalGuests int
	}
	byDay := map[string]*dayAgg{}
	byTime := map[string]int{}

	totalGuests := 0
	maxGuests := 0
	cancelled := 0
	projectedRevenue := 0.0
	confirmedGuests := 0
	confirmedCount := 0

	for _, b := range bookings {
		byStatus[b.Status]++
		if b.Status == "cancelled" {
			cancelled++
		}

		svc, ok := byService[b.Service]
		if !ok {
			svc = &serviceAgg{}
			byService[b.Service] = svc
		}
		svc.count++
		svc.totalGuests += b.Guests

		day := b.Date.Format("2006-01-02")
		d, ok := byDay[day]
		if !ok {
			d = &dayAgg{}
			byDay[day] = d
		}
		d.count++
		d.totalGuests += b.Guests

		byTime[b.Time]++
		totalGuests += b.Guests
		if b.Guests > maxGuests {
			maxGuests = b.Guests
		}

		if b.Status == "confirmed" || b.Status == "completed" {
			projectedRevenue += models.ServicePrice(b.Service)
			confirmedGuests += b.Guests
			confirmedCount++
		}
	}

	statusBreakdown := []gin.H{}
	for status, count := range byStatus {
		statusBreakdown = append(statusBreakdown, gin.H{"_id": status, "count": count})
	}

	serviceBreakdown := []gin.H{}
	var popularService gin.H
	popularCount := 0
	for service, agg := range byService {
		entry := gin.H{
			"_id":           service,
			"count":         agg.count,
			"totalGuests":   agg.totalGuests,
			"averageGuests": float64(agg.totalGuests) / float64(agg.count),
		}
		serviceBreakdown = append(serviceBreakdown, entry)
		if agg.count > popularCount {
			popularCount = agg.count
			popularService = entry
		}
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)
	dailyTrends := make([]gin.H, 0, len(days))
	for _, day := range days {
		dailyTrends = append(dailyTrends, gin.H{
			"_id":         day,
			"count":       byDay[day].count,
			"totalGuests": byDay[day].totalGuests,
		})
	}

	type slotCount struct {
		slot  string
		count int
	}
	slots := make([]slotCount, 0, len(byTime))
	for slot, count := range byTime {
		slots = append(slots, slotCount{slot, count})
	}
	for i := 0; i < len(slots); i++ {
		for j := i + 1; j < len(slots); j++ {
			if slots[j].count > slots[i].count {
				slots[i], slots[j] = slots[j], slots[i]
			}
		}
	}
	if len(slots) > 5 {
		slots = slots[:5]
	}
	popularTimeSlots := make([]gin.H, 0, len(slots))
	for _, s := range slots {
		popularTimeSlots = append(popularTimeSlots, gin.H{
			"_id":        s.slot,
			"count":      s.count,
			"percentage": float64(s.count) / float64(totalBookings) * 100,
		})
	}

	peak := popularTimeSlots
	if len(peak) > 3 {
		peak = peak[:3]
	}

	cancellationRate := float64(cancelled) / float64(totalBookings) * 100
	totalDays := len(byDay)
	if totalDays == 0 {
		totalDays = 1
	}
	occupancyRate := float64(totalBookings) / float64(totalDays*len(models.TimeSlots)) * 100

	averageBookingValue := 0.0
	if confirmedCount > 0 {
		averageBookingValue = float64(confirmedGuests) / float64(confirmedCount)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"period":    period,
		"dateRange": gin.H{"start": start, "end": end},
		"summary": gin.H{
			"totalBookings":       totalBookings,
			"totalGuests":         totalGuests,
			"averageGuests":       fmt.Sprintf("%.2f", float64(totalGuests)/float64(totalBookings)),
			"maxGuests":           maxGuests,
			"cancellationRate":    fmt.Sprintf("%.2f%%", cancellationRate),
			"projectedRevenue":    projectedRevenue,
			"averageBookingValue": fmt.Sprintf("%.2f", averageBookingValue),
		},
		"breakdown": gin.H{
			"byStatus":         statusBreakdown,
			"byService":        serviceBreakdown,
			"dailyTrends":      dailyTrends,
			"popularTimeSlots": popularTimeSlots,
		},
		"analytics": gin.H{
			"occupancyRate":      fmt.Sprintf("%.2f%%", occupancyRate),
			"peakHours":          peak,
			"mostPopularService": popularService,
		},
	})
}

// GetMonthlyOverview returns a 12-row booking overview for a year,
// missing months filled with zeros.
func GetMonthlyOverview(c *gin.Context) {
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(time.Now().Year())))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid year"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	start, end := utils.YearRange(year, time.UTC)
	cursor, err := config.BookingCollection.Find(ctx, bson.M{"date": bson.M{"$gte": start, "$lte": end}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching monthly overview", "error": err.Error()})
		return
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching monthly overview", "error": err.Error()})
		return
	}

	type monthAgg struct {
		total     int
		confirmed int
		guests    int
		revenue   float64
	}
	months := make([]monthAgg, 12)
	for _, b := range bookings {
		m := int(b.Date.Month()) - 1
		months[m].total++
		if b.Status == "confirmed" {
			months[m].confirmed++
		}
		months[m].guests += b.Guests
		months[m].revenue += models.ServicePrice(b.Service)
	}

	data := make([]gin.H, 0, 12)
	for i, m := range months {
		occupancy := float64(m.total) / float64(30*len(models.TimeSlots)) * 100
		data = append(data, gin.H{
			"month":             i + 1,
			"monthName":         time.Month(i + 1).String(),
			"totalBookings":     m.total,
			"confirmedBookings": m.confirmed,
			"totalGuests":       m.guests,
			"revenue":           m.revenue,
			"occupancyRate":     fmt.Sprintf("%.2f%%", occupancy),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"year":    year,
		"data":    data,
	})
}

package utils

import (
	"fmt"
	"strings"
	"time"

	"backend/models"
)

const mailWrapper = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">%s</div>`

func starRating(rating int) string {
	return strings.Repeat("⭐", rating)
}

func SendVerificationEmail(user models.User, token string) error {
	verificationURL := fmt.Sprintf("%s/verify-email/%s", FrontendURL(), token)
	body := fmt.Sprintf(mailWrapper, fmt.Sprintf(`
      <h2 style="color: #333; text-align: center;">Verify Your Email Address</h2>
      <p>Hello %s,</p>
      <p>Thank you for registering with us. Please verify your email address by clicking the button below:</p>
      <div style="text-align: center; margin: 30px 0;">
        <a href="%s" style="background-color: #007bff; color: white; padding: 12px 24px; text-decoration: none; border-radius: 5px; display: inline-block;">Verify Email Address</a>
      </div>
      <p>If the button doesn't work, copy and paste this link in your browser:</p>
      <p>%s</p>
      <p>This link will expire in 24 hours.</p>`, user.Name, verificationURL, verificationURL))

	return SendEmail(user.Email, "Verify Your Email Address", body)
}

func SendWelcomeEmail(user models.User) error {
	body := fmt.Sprintf(mailWrapper, fmt.Sprintf(`
      <h2 style="color: #28a745; text-align: center;">Welcome Aboard!</h2>
      <p>Hello %s,</p>
      <p>Congratulations! Your email has been successfully verified and your account is now active.</p>
      <p>You can now log in to your account and start using our system.</p>`, user.Name))

	return SendEmail(user.Email, "Welcome to Our System!", body)
}

func SendWeeklyStatsEmail(admin models.User, stats models.WeeklyStats) error {
	var attendance strings.Builder
	for _, m := range stats.ManagerAttendance {
		lastLogin := "Never"
		if m.LastLogin != nil {
			lastLogin = m.LastLogin.Format("2006-01-02")
		}
		attendance.WriteString(fmt.Sprintf(`<tr>
              <td style="padding: 10px; border: 1px solid #ddd;">%s</td>
              <td style="padding: 10px; border: 1px solid #ddd;">%s</td>
              <td style="padding: 10px; border: 1px solid #ddd;">%d</td>
              <td style="padding: 10px; border: 1px solid #ddd;">%s</td>
              <td style="padding: 10px; border: 1px solid #ddd;">%d%%</td>
            </tr>`, m.Name, m.Email, m.LoginCount, lastLogin, m.AttendanceRate))
	}

	var logins strings.Builder
	for _, d := range stats.UserLogins {
		logins.WriteString(fmt.Sprintf(`<tr>
              <td style="padding: 10px; border: 1px solid #ddd;">%s</td>
              <td style="padding: 10px; border: 1px solid #ddd;">%d</td>
              <td style="padding: 10px; border: 1px solid #ddd;">%d</td>
            </tr>`, d.Day, d.Logins, d.ActiveUsers))
	}

	body := fmt.Sprintf(mailWrapper, fmt.Sprintf(`
      <div style="text-align: center; margin-bottom: 30px;">
        <h2 style="color: #333; margin-bottom: 5px;">Weekly System Statistics</h2>
        <p style="color: #666;">%s - %s</p>
      </div>
      <div style="background-color: #f8f9fa; padding: 20px; border-radius: 5px; margin-bottom: 20px;">
        <h3 style="color: #007bff;">User Statistics</h3>
        <p><strong>Total Users:</strong> %d</p>
        <p><strong>New Users This Week:</strong> %d</p>
        <p><strong>Active Users This Week:</strong> %d</p>
        <p><strong>Total Managers:</strong> %d</p>
      </div>
      <div style="background-color: #f8f9fa; padding: 20px; border-radius: 5px; margin-bottom: 20px;">
        <h3 style="color: #dc3545;">Manager Attendance</h3>
        <table style="width: 100%%; border-collapse: collapse; background: white;">
          <thead>
            <tr style="background-color: #dc3545; color: white;">
              <th style="padding: 12px; border: 1px solid #ddd; text-align: left;">Manager Name</th>
              <th style="padding: 12px; border: 1px solid #ddd; text-align: left;">Email</th>
              <th style="padding: 12px; border: 1px solid #ddd; text-align: left;">Login Count</th>
              <th style="padding: 12px; border: 1px solid #ddd; text-align: left;">Last Login</th>
              <th style="padding: 12px; border: 1px solid #ddd; text-align: left;">Attendance Rate</th>
            </tr>
          </thead>
          <tbody>%s</tbody>
        </table>
      </div>
      <div style="background-color: #f8f9fa; padding: 20px; border-radius: 5px;">
        <h3 style="color: #fd7e14;">User Login Activity</h3>
        <table style="width: 100%%; border-collapse: collapse; background: white;">
          <thead>
            <tr style="background-color: #fd7e14; color: white;">
              <th style="padding: 12px; border: 1px solid #ddd; text-align: left;">Day</th>
              <th style="padding: 12px; border: 1px solid #ddd; text-align: left;">Logins</th>
              <th style="padding: 12px; border: 1px solid #ddd; text-align: left;">Active Users</th>
            </tr>
          </thead>
          <tbody>%s</tbody>
        </table>
      </div>
      <p style="color: #999; font-size: 12px; text-align: center; margin-top: 30px;">This is an automated weekly statistics report generated by the system.</p>`,
		stats.StartDate.Format("Mon Jan 2 2006"), stats.EndDate.Format("Mon Jan 2 2006"),
		stats.TotalUsers, stats.NewUsersThisWeek, stats.ActiveUsersThisWeek, stats.TotalManagers,
		attendance.String(), logins.String()))

	subject := fmt.Sprintf("Weekly System Statistics - %s to %s",
		stats.StartDate.Format("Mon Jan 2 2006"), stats.EndDate.Format("Mon Jan 2 2006"))
	return SendEmail(admin.Email, subject, body)
}

func SendTestimonialConfirmation(t models.Testimonial) error {
	body := fmt.Sprintf(mailWrapper, fmt.Sprintf(`
      <h2 style="color: #28a745; text-align: center;">Testimonial Received!</h2>
      <p>Hello <strong>%s</strong>,</p>
      <p>We've successfully received your testimonial. Here's what you shared:</p>
      <div style="background: white; padding: 15px; border-radius: 5px; margin: 15px 0;">
        <p style="font-style: italic; margin: 0;">"%s"</p>
        <div style="margin-top: 10px;"><strong>Rating:</strong> %s</div>
      </div>
      <p><strong>Current Status:</strong> <span style="color: #ffc107; font-weight: bold;">Pending Review</span></p>
      <p>Our team will review your testimonial and it will be published on our website once approved.</p>
      <p style="color: #999; font-size: 12px; text-align: center;">Best regards,<br>The Team</p>`,
		t.Name, t.Content, starRating(t.Rating)))

	return SendEmail(t.Email, "Testimonial Received - Thank You!", body)
}

func SendTestimonialApproval(t models.Testimonial) error {
	body := fmt.Sprintf(mailWrapper, fmt.Sprintf(`
      <h2 style="color: #28a745; text-align: center;">Testimonial Approved!</h2>
      <p>Hello <strong>%s</strong>,</p>
      <p>Great news! Your testimonial has been approved and is now published on our website.</p>
      <div style="background: white; padding: 15px; border-radius: 5px; margin: 15px 0;">
        <p style="font-style: italic; margin: 0;">"%s"</p>
        <div style="margin-top: 10px;"><strong>Rating:</strong> %s</div>
      </div>
      <p style="color: #28a745; font-weight: bold;">Thank you for sharing your positive experience with our community!</p>
      <p style="color: #999; font-size: 12px; text-align: center;">Best regards,<br>The Team</p>`,
		t.Name, t.Content, starRating(t.Rating)))

	return SendEmail(t.Email, "Your Testimonial Has Been Approved!", body)
}

func SendTestimonialRejection(t models.Testimonial, reason string) error {
	reasonBlock := ""
	if reason != "" {
		reasonBlock = fmt.Sprintf(`<div style="background: #fff3cd; padding: 15px; border-radius: 5px; margin: 15px 0;"><strong>Reason:</strong> %s</div>`, reason)
	}
	body := fmt.Sprintf(mailWrapper, fmt.Sprintf(`
      <h2 style="color: #dc3545; text-align: center;">Testimonial Update</h2>
      <p>Hello <strong>%s</strong>,</p>
      <p>Thank you for taking the time to share your feedback with us.</p>
      <p>After careful review, we're unable to publish your testimonial at this time.</p>
      %s
      <p>We appreciate your understanding and encourage you to share your thoughts with us in the future.</p>
      <p style="color: #999; font-size: 12px; text-align: center;">Best regards,<br>The Team</p>`,
		t.Name, reasonBlock))

	return SendEmail(t.Email, "Update on Your Testimonial", body)
}

func SendOrderConfirmation(order models.Order, customerEmail string) error {
	var items strings.Builder
	for _, item := range order.CartItems {
		items.WriteString(fmt.Sprintf(`<tr>
          <td style="padding: 10px; border: 1px solid #ddd;">%s</td>
          <td style="padding: 10px; border: 1px solid #ddd; text-align: center;">%d</td>
          <td style="padding: 10px; border: 1px solid #ddd; text-align: right;">$%.2f</td>
          <td style="padding: 10px; border: 1px solid #ddd; text-align: right;">$%.2f</td>
        </tr>`, item.Name, item.Quantity, item.Price, item.TotalPrice))
	}

	body := fmt.Sprintf(mailWrapper, fmt.Sprintf(`
      <h2 style="color: #28a745; text-align: center;">Order Confirmed!</h2>
      <p style="color: #666; text-align: center;">Thank you for your order</p>
      <div style="background-color: #f8f9fa; padding: 20px; border-radius: 5px; margin-bottom: 20px;">
        <p><strong>Order ID:</strong> %s<br>
        <strong>Order Date:</strong> %s<br>
        <strong>Status:</strong> %s<br>
        <strong>Payment Method:</strong> %s<br>
        <strong>Payment Status:</strong> %s</p>
        <h4 style="color: #333;">Customer Information</h4>
        <p><strong>Name:</strong> %s<br>
        <strong>Phone:</strong> %s<br>
        <strong>Location:</strong> %s</p>
        <h4 style="color: #333;">Order Items</h4>
        <table style="width: 100%%; border-collapse: collapse; background: white;">
          <thead>
            <tr style="background-color: #007bff; color: white;">
              <th style="padding: 10px; border: 1px solid #ddd; text-align: left;">Item</th>
              <th style="padding: 10px; border: 1px solid #ddd; text-align: center;">Qty</th>
              <th style="padding: 10px; border: 1px solid #ddd; text-align: right;">Price</th>
              <th style="padding: 10px; border: 1px solid #ddd; text-align: right;">Total</th>
            </tr>
          </thead>
          <tbody>%s</tbody>
        </table>
        <p style="margin-top: 20px;"><strong>Subtotal:</strong> $%.2f<br>
        <strong>Tax:</strong> $%.2f<br>
        <strong>Total:</strong> $%.2f</p>
      </div>
      <p style="color: #999; font-size: 12px; text-align: center;">We'll notify you when your order status changes. Thank you for choosing us!</p>`,
		order.OrderDetails.OrderID, order.OrderDetails.Timestamp.Format(time.RFC1123),
		order.OrderDetails.Status, order.OrderDetails.PaymentMethod, order.OrderDetails.PaymentStatus,
		order.CustomerInfo.Name, order.CustomerInfo.Phone, order.CustomerInfo.Location,
		items.String(), order.Summary.Subtotal, order.Summary.Tax, order.Summary.Total))

	subject := fmt.Sprintf("Order Confirmation - %s", order.OrderDetails.OrderID)
	return SendEmail(customerEmail, subject, body)
}

func SendOrderStatusUpdate(order models.Order, customerEmail, previousStatus string) error {
	body := fmt.Sprintf(mailWrapper, fmt.Sprintf(`
      <h2 style="text-align: center;">Order Status Updated</h2>
      <div style="background-color: #f8f9fa; padding: 20px; border-radius: 5px;">
        <h3 style="color: #333;">Order #%s</h3>
        <p style="font-size: 24px; font-weight: bold;">%s</p>
        <p style="color: #666;">Previous status: %s</p>
        <p><strong>Customer:</strong> %s</p>
        <p><strong>Order Total:</strong> $%.2f</p>
        <p><strong>Items:</strong> %d items</p>
      </div>`,
		order.OrderDetails.OrderID, strings.ToUpper(order.OrderDetails.Status), previousStatus,
		order.CustomerInfo.Name, order.Summary.Total, order.Summary.ItemCount))

	subject := fmt.Sprintf("Order Update - %s is now %s", order.OrderDetails.OrderID, order.OrderDetails.Status)
	return SendEmail(customerEmail, subject, body)
}

// DailyOrderReport is the payload for the end-of-day order email.
type DailyOrderReport struct {
	Date           string
	TotalOrders    int
	TotalRevenue   float64
	OrdersByStatus map[string]int
	PopularItems   []models.TopSellingItem
}

func SendDailyOrderReport(admin models.User, report DailyOrderReport) error {
	var statusRows strings.Builder
	for status, count := range report.OrdersByStatus {
		statusRows.WriteString(fmt.Sprintf(`<tr>
          <td style="padding: 8px; border: 1px solid #ddd;">%s</td>
          <td style="padding: 8px; border: 1px solid #ddd; text-align: center;">%d</td>
        </tr>`, status, count))
	}

	var popularRows strings.Builder
	items := report.PopularItems
	if len(items) > 5 {
		items = items[:5]
	}
	for i, item := range items {
		popularRows.WriteString(fmt.Sprintf(`<tr>
          <td style="padding: 8px; border: 1px solid #ddd;">%d</td>
          <td style="padding: 8px; border: 1px solid #ddd;">%s</td>
          <td style="padding: 8px; border: 1px solid #ddd; text-align: center;">%d</td>
          <td style="padding: 8px; border: 1px solid #ddd; text-align: right;">$%.2f</td>
        </tr>`, i+1, item.Name, item.Quantity, item.Revenue))
	}

	body := fmt.Sprintf(mailWrapper, fmt.Sprintf(`
      <h2 style="color: #333; text-align: center;">Daily Order Report</h2>
      <p style="color: #666; text-align: center;">%s</p>
      <p><strong>Total Orders:</strong> %d</p>
      <p><strong>Total Revenue:</strong> $%.2f</p>
      <h3 style="color: #333;">Orders by Status</h3>
      <table style="width: 100%%; border-collapse: collapse; background: white;">
        <thead><tr style="background-color: #6c757d; color: white;">
          <th style="padding: 10px; border: 1px solid #ddd;">Status</th>
          <th style="padding: 10px; border: 1px solid #ddd;">Count</th>
        </tr></thead>
        <tbody>%s</tbody>
      </table>
      <h3 style="color: #333;">Popular Items</h3>
      <table style="width: 100%%; border-collapse: collapse; background: white;">
        <thead><tr style="background-color: #6c757d; color: white;">
          <th style="padding: 10px; border: 1px solid #ddd;">#</th>
          <th style="padding: 10px; border: 1px solid #ddd;">Item</th>
          <th style="padding: 10px; border: 1px solid #ddd;">Qty</th>
          <th style="padding: 10px; border: 1px solid #ddd;">Revenue</th>
        </tr></thead>
        <tbody>%s</tbody>
      </table>
      <p style="color: #999; font-size: 12px; text-align: center; margin-top: 30px;">This is an automated daily report generated by the system.</p>`,
		report.Date, report.TotalOrders, report.TotalRevenue, statusRows.String(), popularRows.String()))

	subject := fmt.Sprintf("Daily Order Report - %s", report.Date)
	return SendEmail(admin.Email, subject, body)
}

func isBookingMessage(m models.Message) bool {
	return m.Type == "booking" || m.Type == "reservation"
}

func SendMessageConfirmation(m models.Message) error {
	isBooking := isBookingMessage(m)

	heading := "Message Received!"
	kind := "message"
	if isBooking {
		heading = "Booking Request Received!"
		kind = "booking request"
	}

	bookingDetails := ""
	if isBooking && m.Date != nil {
		bookingDetails = fmt.Sprintf(`<div style="background: #e7f3ff; padding: 15px; border-radius: 5px; margin: 15px 0; border-left: 4px solid #007bff;">
          <h4 style="margin: 0 0 10px 0; color: #004085;">Booking Details</h4>
          <p style="margin: 5px 0;"><strong>Date:</strong> %s</p>
          <p style="margin: 5px 0;"><strong>Time:</strong> %s</p>
          <p style="margin: 5px 0;"><strong>Guests:</strong> %d</p>
        </div>`, m.Date.Format("2006-01-02"), m.Time, m.Guests)
	}

	body := fmt.Sprintf(mailWrapper, fmt.Sprintf(`
      <h2 style="color: #28a745; text-align: center;">%s</h2>
      <p style="color: #666; text-align: center;">Thank you for contacting us</p>
      <div style="background-color: #f8f9fa; padding: 20px; border-radius: 5px;">
        <p>Hello <strong>%s</strong>,</p>
        <p>We've successfully received your %s. Here's what you sent us:</p>
        <div style="background: white; padding: 15px; border-radius: 5px; margin: 15px 0;">
          <p style="margin: 0; font-style: italic;">"%s"</p>
        </div>
        %s
        <p><strong>Current Status:</strong> <span style="color: #17a2b8; font-weight: bold;">Received - Under Review</span></p>
        <p>Our team will review your %s and get back to you as soon as possible.</p>
      </div>
      <p style="color: #999; font-size: 12px; text-align: center;">We typically respond within 24 hours. For urgent matters, please call us directly.</p>`,
		heading, m.Name, kind, m.Message, bookingDetails, kind))

	subject := fmt.Sprintf("Message Received - Thank You, %s", m.Name)
	if isBooking {
		subject = fmt.Sprintf("Booking Request Received - %s", m.Name)
	}
	return SendEmail(m.Email, subject, body)
}

func SendNewMessageNotification(admin models.User, m models.Message) error {
	isBooking := isBookingMessage(m)

	kind := "Message"
	if isBooking {
		kind = "Booking Request"
	}

	bookingDetails := ""
	if isBooking && m.Date != nil {
		bookingDetails = fmt.Sprintf(`<div style="background: #fff3cd; padding: 15px; border-radius: 5px; margin: 10px 0; border-left: 4px solid #ffc107;">
          <h4 style="margin: 0 0 10px 0; color: #856404;">Booking Request</h4>
          <p style="margin: 5px 0;"><strong>Date:</strong> %s</p>
          <p style="margin: 5px 0;"><strong>Time:</strong> %s</p>
          <p style="margin: 5px 0;"><strong>Guests:</strong> %d</p>
        </div>`, m.Date.Format("2006-01-02"), m.Time, m.Guests)
	}

	body := fmt.Sprintf(mailWrapper, fmt.Sprintf(`
      <h2 style="color: #dc3545; text-align: center;">New %s</h2>
      <p style="color: #666; text-align: center;">Action required</p>
      <div style="background-color: #f8f9fa; padding: 20px; border-radius: 5px;">
        <p><strong>Customer:</strong> %s<br>
        <strong>Email:</strong> %s<br>
        <strong>Phone:</strong> %s</p>
        <p><strong>Type:</strong> %s<br>
        <strong>Category:</strong> %s<br>
        <strong>Priority:</strong> %s</p>
        %s
        <h4 style="color: #333;">Message Content</h4>
        <div style="background: white; padding: 15px; border-radius: 5px;">
          <p style="margin: 0; white-space: pre-wrap;">%s</p>
        </div>
      </div>
      <div style="text-align: center; margin-top: 30px;">
        <a href="%s/admin/messages" style="background-color: #007bff; color: white; padding: 12px 30px; text-decoration: none; border-radius: 5px; display: inline-block; font-weight: bold;">View in Dashboard</a>
      </div>`,
		kind, m.Name, m.Email, m.Phone, m.Type, m.Category, strings.ToUpper(m.Priority),
		bookingDetails, m.Message, FrontendURL()))

	subject := fmt.Sprintf("New %s - %s (%s)", kind, m.Name, strings.ToUpper(m.Priority))
	return SendEmail(admin.Email, subject, body)
}

func SendMessageResponse(m models.Message, response, staffName string) error {
	isBooking := isBookingMessage(m)

	heading := "Response to Your Message"
	kind := "message"
	if isBooking {
		heading = "Booking Update"
		kind = "booking request"
	}

	body := fmt.Sprintf(mailWrapper, fmt.Sprintf(`
      <h2 style="color: #28a745; text-align: center;">%s</h2>
      <p style="color: #666; text-align: center;">Response from our team</p>
      <div style="background-color: #f8f9fa; padding: 20px; border-radius: 5px;">
        <p>Hello <strong>%s</strong>,</p>
        <p>Thank you for contacting us. Here's our response to your %s:</p>
        <div style="background: white; padding: 15px; border-radius: 5px; margin: 15px 0; border-left: 4px solid #007bff;">
          <p style="margin: 0; white-space: pre-wrap;">%s</p>
          <p style="margin: 10px 0 0 0; color: #666; font-size: 14px;"><strong>%s</strong></p>
        </div>
        <div style="background: #e7f3ff; padding: 15px; border-radius: 5px; margin: 15px 0;">
          <h4 style="margin: 0 0 10px 0; color: #004085;">Your Original Message</h4>
          <p style="margin: 0; font-style: italic;">"%s"</p>
        </div>
        <p>If you have any further questions or need additional assistance, please don't hesitate to reply to this email.</p>
      </div>
      <p style="color: #999; font-size: 12px; text-align: center;">Best regards,<br>The Team</p>`,
		heading, m.Name, kind, response, staffName, m.Message))

	subjectKind := "Your Message"
	if isBooking {
		subjectKind = "Booking Request"
	}
	subject := fmt.Sprintf("Re: %s - %s", subjectKind, m.Name)
	return SendEmail(m.Email, subject, body)
}

// DailyMessagesReport is the payload for the end-of-day messages email.
type DailyMessagesReport struct {
	Date             string
	TotalMessages    int
	MessagesByType   map[string]int
	MessagesByStatus map[string]int
	UnreadCount      int64
}

func SendDailyMessagesReport(admin models.User, report DailyMessagesReport) error {
	var typeRows strings.Builder
	for msgType, count := range report.MessagesByType {
		typeRows.WriteString(fmt.Sprintf(`<tr>
          <td style="padding: 8px; border: 1px solid #ddd;">%s</td>
          <td style="padding: 8px; border: 1px solid #ddd; text-align: center;">%d</td>
        </tr>`, msgType, count))
	}

	var statusRows strings.Builder
	for status, count := range report.MessagesByStatus {
		statusRows.WriteString(fmt.Sprintf(`<tr>
          <td style="padding: 8px; border: 1px solid #ddd;">%s</td>
          <td style="padding: 8px; border: 1px solid #ddd; text-align: center;">%d</td>
        </tr>`, status, count))
	}

	unreadBlock := ""
	if report.UnreadCount > 0 {
		unreadBlock = fmt.Sprintf(`<div style="background: #fff3cd; padding: 15px; border-radius: 5px; margin-top: 20px; border-left: 4px solid #ffc107;">
          <p style="margin: 0; color: #856404;">You have <strong>%d</strong> unread messages that require your attention.</p>
        </div>`, report.UnreadCount)
	}

	body := fmt.Sprintf(mailWrapper, fmt.Sprintf(`
      <h2 style="color: #333; text-align: center;">Daily Messages Report</h2>
      <p style="color: #666; text-align: center;">%s</p>
      <p><strong>Total Messages:</strong> %d</p>
      <p><strong>Booking Requests:</strong> %d</p>
      <p><strong>Unread Messages:</strong> %d</p>
      <h3 style="color: #333;">Messages by Type</h3>
      <table style="width: 100%%; border-collapse: collapse; background: white;">
        <thead><tr style="background-color: #6c757d; color: white;">
          <th style="padding: 10px; border: 1px solid #ddd;">Type</th>
          <th style="padding: 10px; border: 1px solid #ddd;">Count</th>
        </tr></thead>
        <tbody>%s</tbody>
      </table>
      <h3 style="color: #333;">Messages by Status</h3>
      <table style="width: 100%%; border-collapse: collapse; background: white;">
        <thead><tr style="background-color: #6c757d; color: white;">
          <th style="padding: 10px; border: 1px solid #ddd;">Status</th>
          <th style="padding: 10px; border: 1px solid #ddd;">Count</th>
        </tr></thead>
        <tbody>%s</tbody>
      </table>
      %s
      <p style="color: #999; font-size: 12px; text-align: center; margin-top: 30px;">This is an automated daily report generated by the system.</p>`,
		report.Date, report.TotalMessages, report.MessagesByType["booking"], report.UnreadCount,
		typeRows.String(), statusRows.String(), unreadBlock))

	subject := fmt.Sprintf("Daily Messages Report - %s", report.Date)
	return SendEmail(admin.Email, subject, body)
}

func SendBookingConfirmation(b models.Booking) error {
	specialRequests := ""
	if b.SpecialRequests != "" {
		specialRequests = fmt.Sprintf(`<p><strong>Special Requests:</strong> %s</p>`, b.SpecialRequests)
	}

	body := fmt.Sprintf(mailWrapper, fmt.Sprintf(`
      <h2 style="color: #28a745; text-align: center;">Booking Confirmed!</h2>
      <p style="color: #666; text-align: center;">Thank you for choosing Florida Bar</p>
      <div style="background-color: #f8f9fa; padding: 20px; border-radius: 5px;">
        <p>Dear <strong>%s</strong>,</p>
        <p>Thank you for your booking with Florida Bar. Here are your booking details:</p>
        <div style="background: white; padding: 15px; border-radius: 5px; margin: 15px 0;">
          <h4 style="margin: 0 0 10px 0; color: #333;">Booking Details:</h4>
          <p><strong>Service:</strong> %s</p>
          <p><strong>Date:</strong> %s</p>
          <p><strong>Time:</strong> %s</p>
          <p><strong>Guests:</strong> %d</p>
          <p><strong>Phone:</strong> %s</p>
          %s
        </div>
        <p>We're looking forward to serving you! If you need to make any changes, please contact us.</p>
      </div>
      <p style="color: #999; font-size: 12px; text-align: center;">Best regards,<br>The Florida Bar Team</p>`,
		b.Name, b.Service, b.Date.Format("2006-01-02"), b.Time, b.Guests, b.Phone, specialRequests))

	return SendEmail(b.Email, "Booking Confirmation - Florida Bar", body)
}

func SendAdminBookingNotification(b models.Booking) error {
	specialRequests := ""
	if b.SpecialRequests != "" {
		specialRequests = fmt.Sprintf(`<p><strong>Special Requests:</strong> %s</p>`, b.SpecialRequests)
	}

	body := fmt.Sprintf(mailWrapper, fmt.Sprintf(`
      <h2 style="color: #dc3545; text-align: center;">New Booking Alert!</h2>
      <p style="color: #666; text-align: center;">A new booking has been received</p>
      <div style="background-color: #f8f9fa; padding: 20px; border-radius: 5px;">
        <h3 style="color: #333;">Customer Details:</h3>
        <p><strong>Name:</strong> %s</p>
        <p><strong>Email:</strong> %s</p>
        <p><strong>Phone:</strong> %s</p>
        <p><strong>Booking ID:</strong> %s</p>
        <p><strong>Status:</strong> %s</p>
        <h3 style="color: #333;">Booking Details:</h3>
        <p><strong>Service:</strong> %s</p>
        <p><strong>Date:</strong> %s</p>
        <p><strong>Time:</strong> %s</p>
        <p><strong>Guests:</strong> %d</p>
        %s
      </div>
      <div style="background: #d4edda; padding: 15px; border-radius: 5px; border-left: 4px solid #28a745;">
        <p style="margin: 0; color: #155724; font-weight: bold;">Please review this booking in the admin panel.</p>
      </div>`,
		b.Name, b.Email, b.Phone, b.ID.Hex(), b.Status,
		b.Service, b.Date.Format("2006-01-02"), b.Time, b.Guests, specialRequests))

	return SendEmail(AdminEmail(), "New Booking Received - Florida Bar", body)
}

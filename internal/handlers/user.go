package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yalex-kim/timing-trainer/internal/repository"
	"github.com/yalex-kim/timing-trainer/internal/utils"
)

type UserHandler struct {
	log *zap.Logger
}

func NewUserHandler(log *zap.Logger) *UserHandler {
	return &UserHandler{log: log}
}

// Profile returns the logged-in user's profile. The reminder time is
// converted back into the user's own timezone for display.
func (h *UserHandler) Profile(c *gin.Context) {
	user := currentUser(c)

	reminderTime := user.ReminderTime
	if user.TimeZone != "" && user.ReminderTime != "" {
		if loc, err := time.LoadLocation(user.TimeZone); err == nil {
			if utcTime, err := time.Parse("15:04", user.ReminderTime); err == nil {
				now := time.Now().UTC()
				reminderInUTC := time.Date(now.Year(), now.Month(), now.Day(), utcTime.Hour(), utcTime.Minute(), 0, 0, time.UTC)
				reminderTime = reminderInUTC.In(loc).Format("15:04")
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"email":                user.Email,
		"firstName":            user.FirstName,
		"lastName":             user.LastName,
		"birthDate":            user.BirthDate.Format("2006-01-02"),
		"gender":               user.Gender,
		"age":                  user.Age(),
		"notificationsEnabled": user.EmailNotificationsEnabled,
		"reminderTime":         reminderTime,
		"timeZone":             user.TimeZone,
	})
}

type updateInfoRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName"`
	BirthDate string `json:"birthDate" binding:"required"`
	Gender    string `json:"gender"`
}

func (h *UserHandler) UpdateInfo(c *gin.Context) {
	user := currentUser(c)

	var req updateInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid profile data"})
		return
	}
	birthDate, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Birth date must be YYYY-MM-DD"})
		return
	}

	if err := repository.UpdateUser(c.Request.Context(), user.ID, req.FirstName, req.LastName, birthDate, req.Gender); err != nil {
		h.log.Error("Failed to update user info", zap.Error(err), zap.Uint("userID", user.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}
	c.Status(http.StatusNoContent)
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

func (h *UserHandler) UpdatePassword(c *gin.Context) {
	user := currentUser(c)

	var req updatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid password data"})
		return
	}
	if !user.CheckPassword(req.CurrentPassword) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Incorrect current password"})
		return
	}
	if !utils.IsComplexPassword(req.NewPassword) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password does not meet complexity requirements"})
		return
	}

	if err := repository.UpdateUserPassword(c.Request.Context(), user.ID, req.NewPassword); err != nil {
		h.log.Error("Failed to update password", zap.Error(err), zap.Uint("userID", user.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}
	c.Status(http.StatusNoContent)
}

type notificationSettingsRequest struct {
	Enabled      bool   `json:"enabled"`
	ReminderTime string `json:"reminderTime"` // HH:MM in the user's local time
	TimeZone     string `json:"timeZone"`
}

func (h *UserHandler) UpdateNotificationSettings(c *gin.Context) {
	user := currentUser(c)

	var req notificationSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification settings"})
		return
	}
	if req.TimeZone == "" {
		req.TimeZone = "UTC"
	}

	loc, err := time.LoadLocation(req.TimeZone)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid timezone"})
		return
	}

	// Combine the current date with the requested time so DST in the
	// user's zone is resolved correctly before converting to UTC.
	now := time.Now()
	dateTimeString := fmt.Sprintf("%s %s", now.Format("2006-01-02"), req.ReminderTime)
	parsedTime, err := time.ParseInLocation("2006-01-02 15:04", dateTimeString, loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Reminder time must be HH:MM"})
		return
	}

	utcReminderTime := parsedTime.UTC().Format("15:04")
	if err := repository.UpdateNotificationPreferences(user.ID, req.Enabled, utcReminderTime, req.TimeZone); err != nil {
		h.log.Error("Failed to update notification preferences", zap.Error(err), zap.Uint("userID", user.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save notification settings"})
		return
	}
	c.Status(http.StatusNoContent)
}

type deleteAccountRequest struct {
	Password     string `json:"password" binding:"required"`
	Confirmation string `json:"confirmation" binding:"required"`
}

func (h *UserHandler) DeleteAccount(c *gin.Context) {
	user := currentUser(c)

	var req deleteAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if req.Confirmation != "DELETE" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Type DELETE to confirm"})
		return
	}
	if !user.CheckPassword(req.Password) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Incorrect password"})
		return
	}

	if err := repository.DeleteUser(c.Request.Context(), user.ID); err != nil {
		h.log.Error("Failed to delete account", zap.Error(err), zap.Uint("userID", user.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account"})
		return
	}

	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	_ = session.Save()
	c.Status(http.StatusNoContent)
}

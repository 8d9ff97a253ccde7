package controllers

import (
	"fmt"
	"net/http"

	"cityfix-be/services"

	"github.com/gin-gonic/gin"
)

// CreateAdmin provisions a sector admin on the identity provider and records it
func (ac *AdminController) CreateAdmin(c *gin.Context) {
	var input struct {
		FullName   string `json:"fullName" binding:"required,max=100"`
		Email      string `json:"email" binding:"required,email"`
		Password   string `json:"password" binding:"required,min=6"`
		Department string `json:"department" binding:"required"`
	}
	if !bindJSON(c, &input) {
		return
	}

	ctx, cancel := requestContext(c, ac.timeout)
	defer cancel()

	user, err := ac.admin.CreateSectorAdmin(ctx, services.NewSectorAdmin{
		FullName:   input.FullName,
		Email:      input.Email,
		Password:   input.Password,
		Department: input.Department,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Admin created successfully.", "user": user})
}

func (ac *AdminController) GetSystemUsers(c *gin.Context) {
	ctx, cancel := requestContext(c, ac.timeout)
	defer cancel()

	users, err := ac.admin.Users(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// ToggleUserStatus blocks or unblocks an account
func (ac *AdminController) ToggleUserStatus(c *gin.Context) {
	id, ok := objectIDParam(c, "id", "User not found.")
	if !ok {
		return
	}

	var input struct {
		IsDisabled *bool `json:"isDisabled" binding:"required"`
	}
	if !bindJSON(c, &input) {
		return
	}

	ctx, cancel := requestContext(c, ac.timeout)
	defer cancel()

	user, err := ac.admin.SetUserDisabled(ctx, id, *input.IsDisabled)
	if err != nil {
		respondError(c, err)
		return
	}

	state := "enabled"
	if *input.IsDisabled {
		state = "disabled"
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("User %s successfully.", state), "user": user})
}

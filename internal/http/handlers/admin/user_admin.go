package admin

import (
	"github.com/minikart-next/minikart/internal/repository"

	"github.com/gin-gonic/gin"
)

func repositoryUserFilter(c *gin.Context, page, pageSize int) repository.UserListFilter {
	return repository.UserListFilter{
		Role:     c.Query("role"),
		Keyword:  c.Query("keyword"),
		Page:     page,
		PageSize: pageSize,
	}
}

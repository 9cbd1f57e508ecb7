// internal/handlers/customer/customer_handler.go
package customer

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"tedtam-service/internal/domain/customer"
	"tedtam-service/internal/middleware"
	xerrors "tedtam-service/internal/pkg/errors"
	"tedtam-service/internal/pkg/response"
	service "tedtam-service/internal/service/customer"
	"tedtam-service/internal/service/excel"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxImportSize = 10 << 20 // 10 MB upload cap

type CustomerHandler struct {
	customerService *service.CustomerService
	logger          *zap.Logger
}

func NewCustomerHandler(customerService *service.CustomerService, logger *zap.Logger) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		logger:          logger,
	}
}

// CreateCustomer registers a new collection case.
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	agentID, ok := middleware.GetAgentID(c)
	if !ok {
		response.Unauthorized(c, "not authenticated")
		return
	}

	var req customer.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	created, err := h.customerService.CreateCustomer(c.Request.Context(), agentID, &req)
	if err != nil {
		if errors.Is(err, xerrors.ErrConflict) {
			response.Error(c, http.StatusConflict, "account number already exists", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to create customer", err)
		return
	}

	response.Success(c, http.StatusCreated, "customer created", created)
}

// GetCustomer fetches a single case by uid.
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	uid := c.Param("uid")

	cust, err := h.customerService.GetCustomer(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "customer not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to fetch customer", err)
		return
	}

	response.Success(c, http.StatusOK, "customer retrieved", cust)
}

// ListCustomers returns a filtered, paginated listing.
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	var filters customer.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid filters", err)
		return
	}

	result, err := h.customerService.ListCustomers(c.Request.Context(), &filters)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to list customers", err)
		return
	}

	response.Success(c, http.StatusOK, "customers retrieved", result)
}

// UpdateCustomer applies a partial update to a case.
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	uid := c.Param("uid")

	var req customer.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	updated, err := h.customerService.UpdateCustomer(c.Request.Context(), uid, &req)
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "customer not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to update customer", err)
		return
	}

	response.Success(c, http.StatusOK, "customer updated", updated)
}

// DeleteCustomer removes a case.
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	uid := c.Param("uid")

	if err := h.customerService.DeleteCustomer(c.Request.Context(), uid); err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "customer not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to delete customer", err)
		return
	}

	response.Success(c, http.StatusOK, "customer deleted", nil)
}

// ImportCustomers ingests an uploaded xlsx workbook. Rows that fail
// validation are reported individually and do not abort the batch.
func (h *CustomerHandler) ImportCustomers(c *gin.Context) {
	agentID, ok := middleware.GetAgentID(c)
	if !ok {
		response.Unauthorized(c, "not authenticated")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "missing file upload", err)
		return
	}
	if fileHeader.Size > maxImportSize {
		response.Error(c, http.StatusRequestEntityTooLarge, "file too large", nil)
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "failed to open upload", err)
		return
	}
	defer f.Close()

	reqs, err := excel.Import(f)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "failed to parse workbook", err)
		return
	}

	created, rowErrs := h.customerService.BulkImportCustomers(c.Request.Context(), agentID, reqs)

	failures := make([]string, 0, len(rowErrs))
	for _, rowErr := range rowErrs {
		failures = append(failures, rowErr.Error())
	}

	response.Success(c, http.StatusOK, "import completed", gin.H{
		"total_rows": len(reqs),
		"created":    created,
		"failed":     len(rowErrs),
		"errors":     failures,
	})
}

// ExportCustomers streams the current case list as an xlsx workbook.
func (h *CustomerHandler) ExportCustomers(c *gin.Context) {
	var filters customer.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid filters", err)
		return
	}
	// Export is unpaginated, use the widest page the API allows.
	filters.Page = 1
	filters.PageSize = 200

	var rows []customer.Customer
	for {
		result, err := h.customerService.ListCustomers(c.Request.Context(), &filters)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "failed to list customers", err)
			return
		}
		rows = append(rows, result.Customers...)
		if filters.Page >= result.TotalPages {
			break
		}
		filters.Page++
	}

	data, err := excel.Export(rows)
	if err != nil {
		h.logger.Error("export workbook failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "failed to build workbook", err)
		return
	}

	serveWorkbook(c, fmt.Sprintf("customers-%s.xlsx", time.Now().Format("2006-01-02")), data)
}

// DownloadTemplate serves an import template with one example row.
func (h *CustomerHandler) DownloadTemplate(c *gin.Context) {
	data, err := excel.Template()
	if err != nil {
		h.logger.Error("template workbook failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "failed to build template", err)
		return
	}

	serveWorkbook(c, "customer-import-template.xlsx", data)
}

func serveWorkbook(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

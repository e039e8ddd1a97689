package handler

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"aevum/internal/delivery/http/response"
	"aevum/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// DNAHandler holds dependencies for DNA kit and report handlers.
type DNAHandler struct {
	uc     usecase.DNAUsecase
	logger *slog.Logger
}

// NewDNAHandler is the constructor for DNAHandler, injected by Fx.
func NewDNAHandler(uc usecase.DNAUsecase, logger *slog.Logger) *DNAHandler {
	return &DNAHandler{
		uc:     uc,
		logger: logger,
	}
}

// ListKitTypes returns the kit catalog with filtering and paging.
func (h *DNAHandler) ListKitTypes(c echo.Context) error {
	input := &usecase.ListKitTypesInput{
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
		Ordering: c.QueryParam("ordering"),
		Page:     queryInt(c, "page"),
		PageSize: queryInt(c, "page_size"),
	}

	output, err := h.uc.ListKitTypes(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Kit types retrieved successfully")
}

// GetKitType returns a single catalog entry.
func (h *DNAHandler) GetKitType(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	kitType, err := h.uc.GetKitType(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, kitType, "Kit type retrieved successfully")
}

// CreateOrder places a DNA kit order for the current user.
func (h *DNAHandler) CreateOrder(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var input *usecase.CreateOrderInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}

	order, err := h.uc.CreateOrder(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, order, "Order created successfully")
}

// ListOrders returns the current user's orders, newest first.
func (h *DNAHandler) ListOrders(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	input := &usecase.ListOrdersInput{
		Page:     queryInt(c, "page"),
		PageSize: queryInt(c, "page_size"),
	}

	output, err := h.uc.ListOrders(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Orders retrieved successfully")
}

// GetOrder returns one of the current user's orders.
func (h *DNAHandler) GetOrder(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	order, err := h.uc.GetOrder(c.Request().Context(), userID, orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Order retrieved successfully")
}

// CancelOrder cancels an order still in a cancellable status.
func (h *DNAHandler) CancelOrder(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	order, err := h.uc.CancelOrder(c.Request().Context(), userID, orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Order cancelled successfully")
}

// GetKitQR renders the order's kit registration code as a PNG QR code.
func (h *DNAHandler) GetKitQR(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	png, err := h.uc.GenerateKitQR(c.Request().Context(), userID, orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// UpdateOrderStatus applies a lab-side status transition to an order.
func (h *DNAHandler) UpdateOrderStatus(c echo.Context) error {
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var input *usecase.UpdateOrderStatusInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}

	order, err := h.uc.UpdateOrderStatus(c.Request().Context(), orderID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Order status updated successfully")
}

// UploadReportPDF accepts a multipart report PDF for an order and queues it
// for asynchronous processing.
func (h *DNAHandler) UploadReportPDF(c echo.Context) error {
	orderID, err := uuid.Parse(c.FormValue("kit_id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "kit_id must be a valid order ID")
	}

	fileHeader, err := c.FormFile("pdf_file")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "pdf_file is required")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return errors.Wrap(err, "failed to open uploaded file")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return errors.Wrap(err, "failed to read uploaded file")
	}

	input := &usecase.UploadReportInput{
		OrderID:     orderID,
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	}

	output, err := h.uc.UploadReportPDF(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusAccepted, output, "Report uploaded, processing started")
}

// GetReport returns the parsed report for an order once results are visible.
func (h *DNAHandler) GetReport(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return err
	}

	report, err := h.uc.GetReport(c.Request().Context(), userID, orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, report, "Report retrieved successfully")
}

// GetDashboard aggregates the current user's DNA activity.
func (h *DNAHandler) GetDashboard(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	output, err := h.uc.GetDashboard(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Dashboard retrieved successfully")
}

// queryInt parses an integer query parameter, returning zero when absent
// or malformed. Paging defaults are applied by the use case.
func queryInt(c echo.Context, name string) int {
	value, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}

	return value
}

package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"inventory_manager/internal/apperrors"
	"inventory_manager/internal/logger"
	"inventory_manager/internal/repository"
	"inventory_manager/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// APIHandler keeps the original wire contract: GET returns the full dataset,
// POST carries a named action plus its payload, and both carry the API key.
type APIHandler struct {
	auth         services.AuthService
	inventory    services.InventoryService
	orders       services.OrderService
	costs        services.CostService
	categories   services.CategoryService
	reports      services.ReportService
	snapshot     services.SnapshotService
	activityRepo repository.ActivityRepository
}

func NewAPIHandler(
	auth services.AuthService,
	inventory services.InventoryService,
	orders services.OrderService,
	costs services.CostService,
	categories services.CategoryService,
	reports services.ReportService,
	snapshot services.SnapshotService,
	activityRepo repository.ActivityRepository,
) *APIHandler {
	return &APIHandler{
		auth:         auth,
		inventory:    inventory,
		orders:       orders,
		costs:        costs,
		categories:   categories,
		reports:      reports,
		snapshot:     snapshot,
		activityRepo: activityRepo,
	}
}

// GetData returns the full snapshot the front end re-fetches after every
// mutation. The key travels as a query parameter on GET.
func (h *APIHandler) GetData(c *gin.Context) {
	if err := h.auth.ValidateKey(c.Query("apiKey")); err != nil {
		respondError(c, err)
		return
	}
	snapshot, err := h.snapshot.Build()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

type commandEnvelope struct {
	Action string `json:"action"`
	APIKey string `json:"apiKey"`
}

// PostCommand dispatches a named action. The payload fields sit beside the
// action and key in the same JSON object.
func (h *APIHandler) PostCommand(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respondError(c, apperrors.Validation("unreadable request body"))
		return
	}

	var envelope commandEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		respondError(c, apperrors.Validation("invalid request format"))
		return
	}
	if err := h.auth.ValidateKey(envelope.APIKey); err != nil {
		respondError(c, err)
		return
	}

	detail, extra, err := h.dispatch(envelope, body)
	if err != nil {
		respondError(c, err)
		return
	}

	if detail != "" {
		if err := h.activityRepo.Record(envelope.Action, detail); err != nil {
			logger.Log.Warn("failed to record activity",
				zap.String("action", envelope.Action), zap.Error(err))
		}
	}

	resp := gin.H{"status": "success"}
	for k, v := range extra {
		resp[k] = v
	}
	c.JSON(http.StatusOK, resp)
}

// dispatch returns the activity-log detail (empty for read-only actions) and
// any extra response fields.
func (h *APIHandler) dispatch(envelope commandEnvelope, body []byte) (string, gin.H, error) {
	switch envelope.Action {
	case "ping":
		return "", nil, nil

	case "logout":
		if err := h.auth.RevokeSession(envelope.APIKey); err != nil {
			return "", nil, err
		}
		return "", nil, nil

	case "addItem":
		var payload services.ItemRow
		if err := json.Unmarshal(body, &payload); err != nil {
			return "", nil, apperrors.Validation("invalid addItem payload")
		}
		if err := h.inventory.AddItem(payload); err != nil {
			return "", nil, err
		}
		return fmt.Sprintf("新增商品「%s」", payload.Name), nil, nil

	case "bulkAddItems":
		var payload struct {
			Items []services.ItemRow `json:"items"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			return "", nil, apperrors.Validation("invalid bulkAddItems payload")
		}
		result, err := h.inventory.BulkAddItems(payload.Items)
		if err != nil {
			return "", nil, err
		}
		return fmt.Sprintf("批量新增 %d 項商品", len(result.Added)), gin.H{"result": result}, nil

	case "updateItem":
		var payload struct {
			OriginalName string `json:"originalName"`
			services.ItemRow
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			return "", nil, apperrors.Validation("invalid updateItem payload")
		}
		if err := h.inventory.UpdateItem(payload.OriginalName, payload.ItemRow); err != nil {
			return "", nil, err
		}
		return fmt.Sprintf("更新商品「%s」", payload.OriginalName), nil, nil

	case "deleteItem":
		var payload struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			return "", nil, apperrors.Validation("invalid deleteItem payload")
		}
		if err := h.inventory.DeleteItem(payload.Name); err != nil {
			return "", nil, err
		}
		return fmt.Sprintf("刪除商品「%s」", payload.Name), nil, nil

	case "previewDeleteItem":
		var payload struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			return "", nil, apperrors.Validation("invalid previewDeleteItem payload")
		}
		summary, err := h.inventory.PreviewDeleteItem(payload.Name)
		if err != nil {
			return "", nil, err
		}
		return "", gin.H{"message": summary}, nil

	case "createOrder":
		var payload services.CreateOrderInput
		if err := json.Unmarshal(body, &payload); err != nil {
			return "", nil, apperrors.Validation("invalid createOrder payload")
		}
		order, err := h.orders.CreateOrder(payload)
		if err != nil {
			return "", nil, err
		}
		detail := fmt.Sprintf("建立訂單 %s（%s，$%.0f）", order.ID, order.Details(), order.TotalPrice)
		return detail, gin.H{"id": order.ID}, nil

	case "completeOrder":
		var payload struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			return "", nil, apperrors.Validation("invalid completeOrder payload")
		}
		if err := h.orders.CompleteOrder(payload.ID); err != nil {
			return "", nil, err
		}
		return fmt.Sprintf("完成訂單 %s", payload.ID), nil, nil

	case "previewCompleteOrder":
		var payload struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			return "", nil, apperrors.Validation("invalid previewCompleteOrder payload")
		}
		summary, err := h.orders.PreviewComplete(payload.ID)
		if err != nil {
			return "", nil, err
		}
		return "", gin.H{"message": summary}, nil

	case "completeOrders":
		ids, err := idsPayload(body)
		if err != nil {
			return "", nil, err
		}
		results := h.orders.CompleteOrders(ids)
		return fmt.Sprintf("批量完成 %d 筆訂單", succeeded(results)), gin.H{"results": results}, nil

	case "deleteOrders":
		ids, err := idsPayload(body)
		if err != nil {
			return "", nil, err
		}
		results := h.orders.DeleteOrders(ids)
		return fmt.Sprintf("刪除 %d 筆訂單", succeeded(results)), gin.H{"results": results}, nil

	case "revenueReport":
		var payload struct {
			Start string `json:"start"`
			End   string `json:"end"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			return "", nil, apperrors.Validation("invalid revenueReport payload")
		}
		stats, err := h.reports.RevenueInRange(payload.Start, payload.End)
		if err != nil {
			return "", nil, err
		}
		return "", gin.H{"report": stats}, nil

	case "addCost":
		var payload services.CostInput
		if err := json.Unmarshal(body, &payload); err != nil {
			return "", nil, apperrors.Validation("invalid addCost payload")
		}
		entry, err := h.costs.AddCost(payload)
		if err != nil {
			return "", nil, err
		}
		return fmt.Sprintf("新增成本紀錄「%s」x %d", entry.ItemName, entry.Quantity), gin.H{"id": entry.ID}, nil

	case "updateCost":
		var payload struct {
			ID uint `json:"id"`
			services.CostInput
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			return "", nil, apperrors.Validation("invalid updateCost payload")
		}
		if err := h.costs.UpdateCost(payload.ID, payload.CostInput); err != nil {
			return "", nil, err
		}
		return fmt.Sprintf("更新成本紀錄 #%d", payload.ID), nil, nil

	case "deleteCost":
		var payload struct {
			ID uint `json:"id"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			return "", nil, apperrors.Validation("invalid deleteCost payload")
		}
		if err := h.costs.DeleteCost(payload.ID); err != nil {
			return "", nil, err
		}
		return fmt.Sprintf("刪除成本紀錄 #%d", payload.ID), nil, nil

	case "addCategory":
		var payload struct {
			MainCategory string `json:"mainCategory"`
			SubCategory  string `json:"subCategory"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			return "", nil, apperrors.Validation("invalid addCategory payload")
		}
		if err := h.categories.AddCategory(payload.MainCategory, payload.SubCategory); err != nil {
			return "", nil, err
		}
		return fmt.Sprintf("新增類別「%s」", payload.MainCategory), nil, nil

	case "updateCategory":
		var payload struct {
			OldMain string `json:"oldMain"`
			OldSub  string `json:"oldSub"`
			NewMain string `json:"newMain"`
			NewSub  string `json:"newSub"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			return "", nil, apperrors.Validation("invalid updateCategory payload")
		}
		if err := h.categories.UpdateCategory(payload.OldMain, payload.OldSub, payload.NewMain, payload.NewSub); err != nil {
			return "", nil, err
		}
		return fmt.Sprintf("更新類別「%s」", payload.OldMain), nil, nil

	case "deleteCategory":
		var payload struct {
			MainCategory string `json:"mainCategory"`
			SubCategory  string `json:"subCategory"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			return "", nil, apperrors.Validation("invalid deleteCategory payload")
		}
		if err := h.categories.DeleteCategory(payload.MainCategory, payload.SubCategory); err != nil {
			return "", nil, err
		}
		return fmt.Sprintf("刪除類別「%s」", payload.MainCategory), nil, nil

	default:
		return "", nil, apperrors.ErrUnknownAction
	}
}

func idsPayload(body []byte) ([]string, error) {
	var payload struct {
		IDs []string `json:"ids"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, apperrors.Validation("invalid order IDs payload")
	}
	if len(payload.IDs) == 0 {
		return nil, apperrors.Validation("no order IDs given")
	}
	return payload.IDs, nil
}

func succeeded(results []services.BulkResult) int {
	count := 0
	for _, r := range results {
		if r.OK {
			count++
		}
	}
	return count
}

func respondError(c *gin.Context, err error) {
	message := err.Error()
	if appErr, ok := err.(*apperrors.Error); ok {
		// Internal causes stay in the logs, not on the wire.
		message = appErr.Message
	}
	c.JSON(apperrors.HTTPStatus(err), gin.H{
		"status":  "error",
		"message": message,
	})
}

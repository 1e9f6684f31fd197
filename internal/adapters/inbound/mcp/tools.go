package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/brintopos/brintopos/internal/application"
	"github.com/brintopos/brintopos/internal/domain"
)

// registerTools registers the till and dashboard tools on the given server.
func registerTools(s *server.MCPServer, till *application.TillService, dash *application.DashboardService) {
	// Till
	s.AddTool(
		mcplib.NewTool("brintopos_menu",
			mcplib.WithDescription("Lists menu items, optionally filtered by category"),
			mcplib.WithString("category",
				mcplib.Description("Category name (All, Appetizers, Main Courses, Desserts, Beverages)"),
			),
		),
		handleMenu(till),
	)

	s.AddTool(
		mcplib.NewTool("brintopos_select_table",
			mcplib.WithDescription("Sets the table number for the current order"),
			mcplib.WithNumber("table",
				mcplib.Required(),
				mcplib.Description("Table number, 1 or higher"),
			),
		),
		handleSelectTable(till),
	)

	s.AddTool(
		mcplib.NewTool("brintopos_add_item",
			mcplib.WithDescription("Adds one unit of a menu item to the current order"),
			mcplib.WithString("item_id",
				mcplib.Required(),
				mcplib.Description("Menu item id"),
			),
		),
		handleAddItem(till),
	)

	s.AddTool(
		mcplib.NewTool("brintopos_set_quantity",
			mcplib.WithDescription("Sets the quantity of an order line; 0 removes it"),
			mcplib.WithString("item_id",
				mcplib.Required(),
				mcplib.Description("Menu item id of the line"),
			),
			mcplib.WithNumber("quantity",
				mcplib.Required(),
				mcplib.Description("New quantity"),
			),
		),
		handleSetQuantity(till),
	)

	s.AddTool(
		mcplib.NewTool("brintopos_remove_item",
			mcplib.WithDescription("Removes an order line"),
			mcplib.WithString("item_id",
				mcplib.Required(),
				mcplib.Description("Menu item id of the line"),
			),
		),
		handleRemoveItem(till),
	)

	s.AddTool(
		mcplib.NewTool("brintopos_set_instructions",
			mcplib.WithDescription("Attaches kitchen instructions to an order line"),
			mcplib.WithString("item_id",
				mcplib.Required(),
				mcplib.Description("Menu item id of the line"),
			),
			mcplib.WithString("text",
				mcplib.Required(),
				mcplib.Description("Instructions, e.g. no onions"),
			),
		),
		handleSetInstructions(till),
	)

	s.AddTool(
		mcplib.NewTool("brintopos_order",
			mcplib.WithDescription("Returns the current order with subtotal, tax and total"),
		),
		handleOrder(till),
	)

	s.AddTool(
		mcplib.NewTool("brintopos_clear_order",
			mcplib.WithDescription("Empties the current order"),
		),
		handleClearOrder(till),
	)

	s.AddTool(
		mcplib.NewTool("brintopos_checkout",
			mcplib.WithDescription("Pays for the current order and finalizes the invoice"),
			mcplib.WithString("method",
				mcplib.Required(),
				mcplib.Description("Payment method: cash, card or mobile"),
			),
			mcplib.WithString("tendered",
				mcplib.Description("Cash handed over, required for cash (e.g. \"50.00\")"),
			),
		),
		handleCheckout(till),
	)

	s.AddTool(
		mcplib.NewTool("brintopos_kitchen_ticket",
			mcplib.WithDescription("Returns the kitchen ticket for an invoice"),
			mcplib.WithString("invoice_id",
				mcplib.Required(),
				mcplib.Description("Invoice id"),
			),
		),
		handleKitchenTicket(till),
	)

	// Dashboard
	s.AddTool(
		mcplib.NewTool("brintopos_list_invoices",
			mcplib.WithDescription("Lists finalized invoices in creation order"),
			mcplib.WithString("admin_credential",
				mcplib.Required(),
				mcplib.Description("Admin dashboard credential"),
			),
		),
		handleListInvoices(dash),
	)

	s.AddTool(
		mcplib.NewTool("brintopos_get_invoice",
			mcplib.WithDescription("Returns one invoice"),
			mcplib.WithString("admin_credential",
				mcplib.Required(),
				mcplib.Description("Admin dashboard credential"),
			),
			mcplib.WithString("invoice_id",
				mcplib.Required(),
				mcplib.Description("Invoice id"),
			),
		),
		handleGetInvoice(dash),
	)

	s.AddTool(
		mcplib.NewTool("brintopos_update_invoice",
			mcplib.WithDescription("Amends the table or payment method of an invoice"),
			mcplib.WithString("admin_credential",
				mcplib.Required(),
				mcplib.Description("Admin dashboard credential"),
			),
			mcplib.WithString("invoice_id",
				mcplib.Required(),
				mcplib.Description("Invoice id"),
			),
			mcplib.WithNumber("table",
				mcplib.Description("New table number"),
			),
			mcplib.WithString("method",
				mcplib.Description("New payment method"),
			),
		),
		handleUpdateInvoice(dash),
	)

	s.AddTool(
		mcplib.NewTool("brintopos_void_invoice",
			mcplib.WithDescription("Voids an invoice; voided invoices leave revenue"),
			mcplib.WithString("invoice_id",
				mcplib.Required(),
				mcplib.Description("Invoice id"),
			),
			mcplib.WithString("credential",
				mcplib.Required(),
				mcplib.Description("Void credential"),
			),
			mcplib.WithString("reason",
				mcplib.Description("Why the invoice is voided"),
			),
		),
		handleVoidInvoice(dash),
	)

	s.AddTool(
		mcplib.NewTool("brintopos_summary",
			mcplib.WithDescription("Returns revenue, tax and counts across invoices"),
			mcplib.WithString("admin_credential",
				mcplib.Required(),
				mcplib.Description("Admin dashboard credential"),
			),
		),
		handleSummary(dash),
	)

	s.AddTool(
		mcplib.NewTool("brintopos_add_menu_item",
			mcplib.WithDescription("Adds a menu item"),
			mcplib.WithString("admin_credential",
				mcplib.Required(),
				mcplib.Description("Admin dashboard credential"),
			),
			mcplib.WithString("name", mcplib.Required(), mcplib.Description("Item name")),
			mcplib.WithString("price", mcplib.Required(), mcplib.Description("Price, e.g. \"8.99\"")),
			mcplib.WithString("category", mcplib.Required(), mcplib.Description("Menu category")),
			mcplib.WithString("description", mcplib.Description("Short description")),
		),
		handleAddMenuItem(dash),
	)

	s.AddTool(
		mcplib.NewTool("brintopos_update_menu_item",
			mcplib.WithDescription("Replaces a menu item; open orders keep their prices"),
			mcplib.WithString("admin_credential",
				mcplib.Required(),
				mcplib.Description("Admin dashboard credential"),
			),
			mcplib.WithString("item_id", mcplib.Required(), mcplib.Description("Menu item id")),
			mcplib.WithString("name", mcplib.Required(), mcplib.Description("Item name")),
			mcplib.WithString("price", mcplib.Required(), mcplib.Description("Price, e.g. \"8.99\"")),
			mcplib.WithString("category", mcplib.Required(), mcplib.Description("Menu category")),
			mcplib.WithString("description", mcplib.Description("Short description")),
		),
		handleUpdateMenuItem(dash),
	)

	s.AddTool(
		mcplib.NewTool("brintopos_remove_menu_item",
			mcplib.WithDescription("Removes a menu item"),
			mcplib.WithString("admin_credential",
				mcplib.Required(),
				mcplib.Description("Admin dashboard credential"),
			),
			mcplib.WithString("item_id", mcplib.Required(), mcplib.Description("Menu item id")),
		),
		handleRemoveMenuItem(dash),
	)
}

// --- till handlers ---

func handleMenu(till *application.TillService) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		raw, _ := request.GetArguments()["category"].(string)
		cat, err := domain.ParseCategory(raw)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(till.Menu(cat))
	}
}

func handleSelectTable(till *application.TillService) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		table, err := intArg(request, "table")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		if err := till.SelectTable(table); err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(till.Order())
	}
}

func handleAddItem(till *application.TillService) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		itemID, err := request.RequireString("item_id")
		if err != nil {
			return errorResult("missing required parameter: item_id"), nil
		}
		if _, err := till.AddItem(itemID); err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(till.Order())
	}
}

func handleSetQuantity(till *application.TillService) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		itemID, err := request.RequireString("item_id")
		if err != nil {
			return errorResult("missing required parameter: item_id"), nil
		}
		qty, err := intArg(request, "quantity")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		if err := till.SetQuantity(itemID, qty); err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(till.Order())
	}
}

func handleRemoveItem(till *application.TillService) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		itemID, err := request.RequireString("item_id")
		if err != nil {
			return errorResult("missing required parameter: item_id"), nil
		}
		till.RemoveItem(itemID)
		return jsonResult(till.Order())
	}
}

func handleSetInstructions(till *application.TillService) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		itemID, err := request.RequireString("item_id")
		if err != nil {
			return errorResult("missing required parameter: item_id"), nil
		}
		text, _ := request.GetArguments()["text"].(string)
		if err := till.SetInstructions(itemID, text); err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(till.Order())
	}
}

func handleOrder(till *application.TillService) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		return jsonResult(till.Order())
	}
}

func handleClearOrder(till *application.TillService) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		till.ClearOrder()
		return textResult("Order cleared."), nil
	}
}

func handleCheckout(till *application.TillService) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		rawMethod, err := request.RequireString("method")
		if err != nil {
			return errorResult("missing required parameter: method"), nil
		}
		method, err := domain.ParsePaymentMethod(rawMethod)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		tendered := domain.MustMoney("0")
		if raw, _ := request.GetArguments()["tendered"].(string); raw != "" {
			tendered, err = domain.ParseMoney("tendered", raw)
			if err != nil {
				return errorResult(err.Error()), nil
			}
		} else if method == domain.PaymentCash {
			return errorResult("tendered is required for cash payments"), nil
		}

		receipt, err := till.Checkout(method, tendered)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(receipt)
	}
}

func handleKitchenTicket(till *application.TillService) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		id, err := request.RequireString("invoice_id")
		if err != nil {
			return errorResult("missing required parameter: invoice_id"), nil
		}
		kt, err := till.KitchenTicket(id)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(kt)
	}
}

// --- dashboard handlers ---

func handleListInvoices(dash *application.DashboardService) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		if res := authorize(dash, request); res != nil {
			return res, nil
		}
		return jsonResult(dash.Invoices())
	}
}

func handleGetInvoice(dash *application.DashboardService) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		if res := authorize(dash, request); res != nil {
			return res, nil
		}
		id, err := request.RequireString("invoice_id")
		if err != nil {
			return errorResult("missing required parameter: invoice_id"), nil
		}
		inv, err := dash.Invoice(id)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(inv)
	}
}

func handleUpdateInvoice(dash *application.DashboardService) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		if res := authorize(dash, request); res != nil {
			return res, nil
		}
		id, err := request.RequireString("invoice_id")
		if err != nil {
			return errorResult("missing required parameter: invoice_id"), nil
		}

		var patch domain.InvoicePatch
		args := request.GetArguments()
		if _, ok := args["table"]; ok {
			table, err := intArg(request, "table")
			if err != nil {
				return errorResult(err.Error()), nil
			}
			patch.TableNumber = &table
		}
		if raw, _ := args["method"].(string); raw != "" {
			m, err := domain.ParsePaymentMethod(raw)
			if err != nil {
				return errorResult(err.Error()), nil
			}
			patch.PaymentMethod = &m
		}

		inv, err := dash.UpdateInvoice(id, patch)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(inv)
	}
}

func handleVoidInvoice(dash *application.DashboardService) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		id, err := request.RequireString("invoice_id")
		if err != nil {
			return errorResult("missing required parameter: invoice_id"), nil
		}
		credential, _ := request.GetArguments()["credential"].(string)
		reason, _ := request.GetArguments()["reason"].(string)

		inv, err := dash.VoidInvoice(id, credential, reason)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(inv)
	}
}

func handleSummary(dash *application.DashboardService) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		if res := authorize(dash, request); res != nil {
			return res, nil
		}
		return jsonResult(dash.Summary())
	}
}

func handleAddMenuItem(dash *application.DashboardService) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		if res := authorize(dash, request); res != nil {
			return res, nil
		}
		item, err := menuItemArg(request)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		added, err := dash.AddMenuItem(item)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(added)
	}
}

func handleUpdateMenuItem(dash *application.DashboardService) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		if res := authorize(dash, request); res != nil {
			return res, nil
		}
		id, err := request.RequireString("item_id")
		if err != nil {
			return errorResult("missing required parameter: item_id"), nil
		}
		item, err := menuItemArg(request)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		item.ID = id
		updated, err := dash.UpdateMenuItem(item)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(updated)
	}
}

func handleRemoveMenuItem(dash *application.DashboardService) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		if res := authorize(dash, request); res != nil {
			return res, nil
		}
		id, err := request.RequireString("item_id")
		if err != nil {
			return errorResult("missing required parameter: item_id"), nil
		}
		if !dash.RemoveMenuItem(id) {
			return errorResult(domain.NewNotFoundError("menu item", id).Error()), nil
		}
		return textResult(fmt.Sprintf("Removed menu item %s.", id)), nil
	}
}

// --- helpers ---

// authorize checks admin_credential and returns an error result when the
// gate rejects it.
func authorize(dash *application.DashboardService, request mcplib.CallToolRequest) *mcplib.CallToolResult {
	credential, _ := request.GetArguments()["admin_credential"].(string)
	if err := dash.Authorize(credential); err != nil {
		return errorResult(err.Error())
	}
	return nil
}

// intArg reads a whole number. JSON numbers arrive as float64.
func intArg(request mcplib.CallToolRequest, name string) (int, error) {
	v, ok := request.GetArguments()[name]
	if !ok {
		return 0, fmt.Errorf("missing required parameter: %s", name)
	}
	f, ok := v.(float64)
	if !ok || f != math.Trunc(f) {
		return 0, fmt.Errorf("%s must be a whole number", name)
	}
	return int(f), nil
}

func menuItemArg(request mcplib.CallToolRequest) (domain.MenuItem, error) {
	args := request.GetArguments()
	name, _ := args["name"].(string)
	price, _ := args["price"].(string)
	category, _ := args["category"].(string)
	description, _ := args["description"].(string)

	cfg := domain.MenuItemConfig{Name: name, Price: price, Category: category, Description: description}
	return cfg.ToMenuItem()
}

// jsonResult marshals v to indented JSON and returns it as a text content result.
func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// textResult returns a plain text content result.
func textResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(text)},
	}
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}

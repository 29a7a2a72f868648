// Package catalog declares the six admin editors: their fields, toast
// messages and the demo rows each one starts with.
package catalog

import "storefront/internal/core"

const (
	KindProducts   = "products"
	KindSuppliers  = "suppliers"
	KindSales      = "sales"
	KindExpenses   = "expenses"
	KindCashFlow   = "cashflow"
	KindCategories = "categories"
)

// All returns the schemas in navigation order. Each call builds fresh
// values, so callers may modify what they get.
func All() []core.Schema {
	return []core.Schema{
		Products(),
		Suppliers(),
		Sales(),
		Expenses(),
		CashFlow(),
		Categories(),
	}
}

// Kinds returns the editor kinds in navigation order.
func Kinds() []string {
	all := All()
	kinds := make([]string, len(all))
	for i, s := range all {
		kinds[i] = s.Kind
	}
	return kinds
}

// Lookup returns the schema for kind.
func Lookup(kind string) (core.Schema, bool) {
	for _, s := range All() {
		if s.Kind == kind {
			return s, true
		}
	}
	return core.Schema{}, false
}

// Products declares no required fields; an empty product is accepted.
func Products() core.Schema {
	return core.Schema{
		Kind:     KindProducts,
		Title:    "Products",
		Singular: "Product",
		Fields: []core.FieldSpec{
			{Name: "name", Label: "Product Name", Input: core.InputText},
			{Name: "price", Label: "Price", Input: core.InputText},
			{Name: "description", Label: "Description", Input: core.InputTextArea},
		},
		Messages: core.Messages{
			Created: "Product added successfully!",
			Updated: "Product updated successfully!",
			Deleted: core.Error("Product deleted!"),
		},
		Seed: []core.Entity{
			{ID: 1, Fields: core.Fields{"name": "Product 1", "price": "100", "description": "Product 1 description"}},
			{ID: 2, Fields: core.Fields{"name": "Product 2", "price": "200", "description": "Product 2 description"}},
			{ID: 3, Fields: core.Fields{"name": "Product 3", "price": "300", "description": "Product 3 description"}},
		},
	}
}

// Suppliers declares no required fields either.
func Suppliers() core.Schema {
	return core.Schema{
		Kind:     KindSuppliers,
		Title:    "Suppliers",
		Singular: "Supplier",
		Fields: []core.FieldSpec{
			{Name: "name", Label: "Supplier Name", Input: core.InputText},
			{Name: "phone", Label: "Phone", Input: core.InputText},
			{Name: "address", Label: "Address", Input: core.InputTextArea},
		},
		Messages: core.Messages{
			Created: "Supplier added successfully!",
			Updated: "Supplier updated successfully!",
			Deleted: core.Error("Supplier deleted successfully!"),
		},
		Seed: []core.Entity{
			{ID: 1, Fields: core.Fields{"name": "Supplier 1", "phone": "123-456-7890", "address": "123 Main St"}},
			{ID: 2, Fields: core.Fields{"name": "Supplier 2", "phone": "987-654-3210", "address": "456 Oak Ave"}},
			{ID: 3, Fields: core.Fields{"name": "Supplier 3", "phone": "555-123-4567", "address": "789 Pine Rd"}},
		},
	}
}

func Sales() core.Schema {
	return core.Schema{
		Kind:     KindSales,
		Title:    "Sales",
		Singular: "Sale",
		Fields: []core.FieldSpec{
			{Name: "product", Label: "Product", Required: true, Input: core.InputText},
			{Name: "quantity", Label: "Quantity", Required: true, Input: core.InputText},
			{Name: "total", Label: "Total", Required: true, Input: core.InputText},
		},
		Messages: core.Messages{
			Created: "Sale added successfully!",
			Updated: "Sale updated successfully!",
			Deleted: core.Error("Sale deleted successfully!"),
		},
		Seed: []core.Entity{
			{ID: 1, Fields: core.Fields{"product": "Laptop", "quantity": "2", "total": "2000"}},
			{ID: 2, Fields: core.Fields{"product": "Phone", "quantity": "5", "total": "3000"}},
			{ID: 3, Fields: core.Fields{"product": "Headphones", "quantity": "10", "total": "500"}},
		},
	}
}

func Expenses() core.Schema {
	return core.Schema{
		Kind:     KindExpenses,
		Title:    "Expenses",
		Singular: "Expense",
		Fields: []core.FieldSpec{
			{Name: "category", Label: "Category", Required: true, Input: core.InputText},
			{Name: "amount", Label: "Amount", Required: true, Input: core.InputText},
			{Name: "date", Label: "Date", Required: true, Input: core.InputDate},
		},
		Messages: core.Messages{
			Created: "Expense added successfully!",
			Updated: "Expense updated successfully!",
			Deleted: core.Error("Expense deleted successfully!"),
		},
		Seed: []core.Entity{
			{ID: 1, Fields: core.Fields{"category": "Food", "amount": "50.00", "date": "2025-05-01"}},
			{ID: 2, Fields: core.Fields{"category": "Transport", "amount": "20.00", "date": "2025-05-02"}},
			{ID: 3, Fields: core.Fields{"category": "Utilities", "amount": "150.00", "date": "2025-05-03"}},
		},
	}
}

func CashFlow() core.Schema {
	return core.Schema{
		Kind:     KindCashFlow,
		Title:    "Cash Flow",
		Singular: "Cash Flow",
		Fields: []core.FieldSpec{
			{Name: "date", Label: "Date", Required: true, Input: core.InputDate},
			{Name: "description", Label: "Description", Required: true, Input: core.InputText},
			{Name: "amount", Label: "Amount", Required: true, Input: core.InputNumber},
		},
		Messages: core.Messages{
			Created: "Cash flow added!",
			Updated: "Cash flow updated!",
			Deleted: core.Warning("Cash flow deleted!"),
		},
		Seed: []core.Entity{
			{ID: 1, Fields: core.Fields{"date": "2025-05-01", "description": "Salary", "amount": "5000"}},
			{ID: 2, Fields: core.Fields{"date": "2025-05-03", "description": "Investment Return", "amount": "1200"}},
			{ID: 3, Fields: core.Fields{"date": "2025-05-06", "description": "Loan Repayment", "amount": "-800"}},
		},
	}
}

func Categories() core.Schema {
	return core.Schema{
		Kind:     KindCategories,
		Title:    "Categories",
		Singular: "Category",
		Fields: []core.FieldSpec{
			{Name: "name", Label: "Category Name", Required: true, Input: core.InputText},
			{Name: "description", Label: "Description", Required: true, Input: core.InputTextArea},
		},
		Messages: core.Messages{
			Created: "Category added!",
			Updated: "Category updated!",
			Deleted: core.Warning("Category deleted!"),
		},
		Seed: []core.Entity{
			{ID: 1, Fields: core.Fields{"name": "Groceries", "description": "Items bought for daily consumption"}},
			{ID: 2, Fields: core.Fields{"name": "Utilities", "description": "Electricity, Water, Internet bills"}},
			{ID: 3, Fields: core.Fields{"name": "Entertainment", "description": "Movies, Games, and Subscriptions"}},
		},
	}
}

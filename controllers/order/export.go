package orderControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/dealerhub/portal-api/models"
)

// GET /admin/orders/export
func ExportOrdersToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var allOrders []models.Order
		if err := db.Preload("User").Preload("Items").Order("created_at DESC").Find(&allOrders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Orders")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		// Header row
		headers := []string{
			"OrderNumber", "Customer", "Email", "Status", "TotalAmount",
			"ShippingAddress", "ItemKind", "ItemName", "Quantity",
			"UnitPrice", "LineTotal", "CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		// One row per line item, order fields repeated.
		for _, o := range allOrders {
			for _, item := range o.Items {
				row := sheet.AddRow()

				row.AddCell().SetValue(o.OrderNumber)
				row.AddCell().SetValue(o.User.Name)
				row.AddCell().SetValue(o.User.Email)
				row.AddCell().SetValue(string(o.Status))
				row.AddCell().SetValue(o.TotalAmount)
				row.AddCell().SetValue(o.ShippingAddress)
				row.AddCell().SetValue(string(item.Kind))
				row.AddCell().SetValue(item.Name)
				row.AddCell().SetValue(item.Quantity)
				row.AddCell().SetValue(item.UnitPrice)
				row.AddCell().SetValue(item.TotalPrice)
				row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
			}
		}

		c.Header("Content-Disposition", "attachment; filename=orders.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
		}
	}
}

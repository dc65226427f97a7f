package domain

// Display names follow the Wildberries statistics API documentation.

var OrdersMapping = FieldMapping{
	"incomeId":        "Номер поставки",
	"number":          "Номер УПД",
	"date":            "Дата поступления",
	"lastChangeDate":  "Дата и время обновления информации в сервисе",
	"supplierArticle": "Артикул продавца",
	"techSize":        "Размер товара",
	"barcode":         "Баркод",
	"quantity":        "Количество",
	"totalPrice":      "Цена из УПД",
	"dateClose":       "Дата принятия (закрытия) в WB",
	"warehouseName":   "Склад отгрузки",
	"warehouseType":   "Тип склада хранения товаров",
	"countryName":     "Страна",
	"oblastOkrugName": "Округ",
	"regionName":      "Регион",
	"category":        "Категория",
	"subject":         "Товар",
	"brand":           "Бренд",
	"nmId":            "Артикул WB",
	"status":          "Текущий статус поставки",
	"isSupply":        "Договор поставки",
	"isRealization":   "Договор реализации",
	"isCancel":        "Отменен ли",
	"cancelDate":      "Дата отмены",
	"orderType":       "Тип заказа",
	"discountPercent": "Скидка продавца",
	"spp":             "Скидка WB",
	"finishedPrice":   "Фактическая цена с учетом всех скидок",
	"priceWithDisc":   "Цена со скидкой продавца",
	"sticker":         "ID стикера",
	"gNumber":         "Номер заказа",
	"srid":            "Уникальный ID заказа",
}

var SalesMapping = FieldMapping{
	"date":              "Дата и время продажи",
	"lastChangeDate":    "Дата и время обновления информации в сервисе",
	"warehouseName":     "Склад отгрузки",
	"warehouseType":     "Тип склада хранения товаров",
	"countryName":       "Страна",
	"oblastOkrugName":   "Округ",
	"regionName":        "Регион",
	"supplierArticle":   "Артикул продавца",
	"nmId":              "Артикул WB",
	"barcode":           "Баркод",
	"category":          "Категория",
	"subject":           "Товар",
	"brand":             "Бренд",
	"techSize":          "Размер товара",
	"incomeID":          "Номер поставки",
	"isSupply":          "Договор поставки",
	"isRealization":     "Договор реализации",
	"totalPrice":        "Цена без скидок",
	"discountPercent":   "Скидка продавца",
	"spp":               "Скидка WB",
	"paymentSaleAmount": "Оплачено с WB Кошелька",
	"forPay":            "К перечислению продавцу",
	"finishedPrice":     "Фактическая цена с учетом всех скидок",
	"priceWithDisc":     "Цена со скидкой продавца",
	"saleID":            "Уникальный ID продажи/возврата",
	"orderType":         "Тип заказа",
	"sticker":           "ID стикера",
	"gNumber":           "Номер заказа",
	"srid":              "Уникальный ID заказа",
}

var KeywordsMapping = FieldMapping{
	"clicks":  "Количество кликов",
	"ctr":     "CTR",
	"keyword": "Ключевая фраза",
	"sum":     "Сумма затрат по ключевой фразе",
	"views":   "Количество показов",
}

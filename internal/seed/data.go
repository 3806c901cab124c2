package seed

import (
	"github.com/lobus/superapp-ledger/internal/models"
	"github.com/shopspring/decimal"
)

type record struct {
	user     models.SessionUser
	password string
}

func initialTransactions() []models.Transaction {
	return []models.Transaction{
		{ID: "t1", Title: "Nómina Unión", Subtitle: "Salario", Amount: decimal.NewFromInt(5000), Date: "Hoy", Kind: models.KindIncome},
		{ID: "t2", Title: "Café Lobus", Subtitle: "Desayuno", Amount: decimal.NewFromInt(-15), Date: "Ayer", Kind: models.KindExpense},
	}
}

var presidentParcels = []models.Parcel{
	{ID: "p1", Tracking: "LB-ES-883920", Status: "En tránsito", Description: "Paquete Amazon Lobus", Date: "Entrega: Mañana"},
	{ID: "p2", Tracking: "LB-EX-112233", Status: "En proceso", Description: "Pasaporte Oficial", Date: "Recibido en central"},
}

var presidentUtilities = []models.UtilityContract{
	{ID: "u1", Type: "LUZ", Provider: "Lobus Energía", Status: "Activa", Details: "Casa Roma - POD IT001", MonthlyCost: decimal.RequireFromString("45.20")},
	{ID: "u2", Type: "SIM", Provider: "LoboTel", Status: "Activa", Details: "333 1234567 - 100GB", MonthlyCost: decimal.RequireFromString("9.99")},
}

var presidentPolicies = []models.InsurancePolicy{
	{ID: "i1", Name: "Lobus Protección Futuro", Number: "100098765", Type: "VIDA", Status: "Activa", Expiry: "12/2030"},
	{ID: "i2", Name: "Seguro Auto Premium", Number: "AUTO-221199", Type: "AUTO", Status: "Activa", Expiry: "05/2026"},
}

var presidentMessages = []models.Message{
	{ID: "m1", Sender: "Agencia Tributaria Lobus", Subject: "Pago de Impuestos 2025", Preview: "Su aviso de pago está disponible.", Date: "09:15", Read: false, IsLegal: true},
	{ID: "m2", Sender: "Sistema de Salud", Subject: "Cita Confirmada", Preview: "Vacunación programada para el martes.", Date: "Ayer", Read: true, IsLegal: false},
}

var presidentDocuments = []models.Document{
	{ID: "d1", Name: "Identidad Digital", Type: "ID", Number: "LB-8829102", Expiry: "12/2030"},
	{ID: "d2", Name: "Tarjeta Sanitaria", Type: "HEALTH", Number: "TS-991002", Expiry: "05/2026"},
	{ID: "d3", Name: "Patente de Conducir", Type: "DRIVING", Number: "LIC-772819", Expiry: "01/2032"},
}

func leader(id, handle, name, country, password, rank string, balance int64, color, bio string) record {
	return record{
		user: models.SessionUser{
			ID:           id,
			Handle:       handle,
			Name:         name,
			Country:      country,
			Rank:         rank,
			Balance:      decimal.NewFromInt(balance),
			AvatarColor:  color,
			Bio:          bio,
			Transactions: initialTransactions(),
			Messages:     []models.Message{},
			Documents:    []models.Document{},
			Policies:     []models.InsurancePolicy{},
			Parcels:      []models.Parcel{},
			Utilities:    []models.UtilityContract{},
		},
		password: password,
	}
}

func leaders() []record {
	president := leader("1", "@bibubib", "Bibu Bib", "País Lobito", "admin", "Omnipotente", 999999999, "bg-yellow-500", "Presidente de la Unión Lobus.")
	president.user.Parcels = presidentParcels
	president.user.Utilities = presidentUtilities
	president.user.Policies = presidentPolicies
	president.user.Messages = presidentMessages
	president.user.Documents = presidentDocuments
	president.user = president.user.Clone()

	return []record{
		president,
		leader("2", "@lobitopeludito", "Lobito Peludito", "País Lobito", "lobo", "Máximo", 50000000, "bg-purple-500", "Vicepresidente de la Unión Lobus."),
		leader("3", "@osopepe", "Oso Pepe", "País Oso", "oso", "Industrial", 25000000, "bg-blue-600", "Presidente País Oso."),
		leader("4", "@higor", "Higor Panzón", "País Plingor", "dragon", "Élite", 10000000, "bg-red-500", "Presidente País Plingor."),
		leader("5", "@capy", "Capy Capibara", "País Capy", "chill", "Estable", 5000000, "bg-green-500", "Presidente País Capy."),
		leader("6", "@luigi", "Luigi Mario", "País Hongo", "verde", "Medio", 1000000, "bg-indigo-500", "Presidente País Hongo."),
		leader("7", "@perrito", "Perrito", "País Perrito", "guau", "Modesto", 500000, "bg-orange-400", "Ciudadano."),
		leader("8", "@pingui", "Pingüino", "País Pingüino", "hielo", "Tecnológico", 75000000, "bg-cyan-400", "Presidente País Pingüino."),
	}
}

func routes() []models.TransportRoute {
	return []models.TransportRoute{
		{ID: "r1", Name: "Ruta Dorada", Origin: "País Lobito", Destination: "País Oso", Type: "MicelioTren", Status: "Rápido", Price: decimal.NewFromInt(50)},
		{ID: "r2", Name: "Expreso Polar", Origin: "Nación Hielo", Destination: "Capital Gaga", Type: "HieloTren", Status: "A Tiempo", Price: decimal.NewFromInt(120)},
		{ID: "r3", Name: "Carga Pesada", Origin: "Zona Industrial", Destination: "Puerto", Type: "BurroRail", Status: "Retrasado", Price: decimal.NewFromInt(15)},
		{ID: "r4", Name: "HyperLoop Gaga", Origin: "Capital Gaga", Destination: "País Lobito", Type: "GagaTren", Status: "Lleno", Price: decimal.NewFromInt(200)},
		{ID: "b1", Name: "LobusBus 101", Origin: "Centro", Destination: "Plaza Oso", Type: "Bus", Status: "A Tiempo", Price: decimal.RequireFromString("2.50")},
		{ID: "b2", Name: "Nocturno N5", Origin: "Discoteca", Destination: "Residencial", Type: "Bus", Status: "Rápido", Price: decimal.RequireFromString("5.00")},
		{ID: "b3", Name: "Interurbano L-P", Origin: "País Lobito", Destination: "País Perrito", Type: "Bus", Status: "Retrasado", Price: decimal.RequireFromString("12.00")},
	}
}

func companies() []models.Quote {
	return []models.Quote{
		{Symbol: "LBX", Name: "Industrias Lobus", Price: decimal.NewFromInt(3490), Change: "+12.5%"},
		{Symbol: "GGA", Name: "Corp Gaga", Price: decimal.NewFromInt(1250), Change: "-2.1%"},
		{Symbol: "MCL", Name: "Tecnología Micelio", Price: decimal.NewFromInt(890), Change: "+5.4%"},
		{Symbol: "OSO", Name: "Minería Oso", Price: decimal.NewFromInt(5400), Change: "+1.2%"},
	}
}

func countryServices() []models.CountryService {
	return []models.CountryService{
		{ID: "LOBITO", Name: "País Lobito", Emoji: "🐺", Description: "Capital Federal de la Unión", Services: []models.ServiceCategory{
			{Title: "Gobierno", Type: models.ServicePublic, Items: []string{"Agencia Tributaria", "Registro Civil", "Multas y Sanciones"}},
			{Title: "Banca", Type: models.ServiceBank, Items: []string{"Banco Central Lobus", "Caja de Ahorros"}},
			{Title: "Transporte", Type: models.ServiceTransport, Items: []string{"Lobus Pass", "Peajes Autopista"}},
		}},
		{ID: "OSO", Name: "País Oso", Emoji: "🐻", Description: "Región Industrial y Mielera", Services: []models.ServiceCategory{
			{Title: "Suministros", Type: models.ServiceUtility, Items: []string{"Energía Osa", "Gas del Bosque"}},
			{Title: "Comercio", Type: models.ServiceBank, Items: []string{"Banco de Miel", "Inversiones Salmón"}},
			{Title: "Transporte", Type: models.ServiceTransport, Items: []string{"Tren Minero", "Carga Pesada"}},
		}},
		{ID: "PLINGOR", Name: "País Plingor", Emoji: "🐲", Description: "Tierra de Dragones y Fuego", Services: []models.ServiceCategory{
			{Title: "Seguridad", Type: models.ServicePublic, Items: []string{"Control de Vuelo", "Permisos de Fuego"}},
			{Title: "Energía", Type: models.ServiceUtility, Items: []string{"Geotermia Plingor", "Volcán Power"}},
		}},
		{ID: "CAPY", Name: "País Capy", Emoji: "🥔", Description: "Zona de Relax y Aguas Termales", Services: []models.ServiceCategory{
			{Title: "Turismo", Type: models.ServicePublic, Items: []string{"Tasa Turística", "Reserva de Spas"}},
			{Title: "Agua", Type: models.ServiceUtility, Items: []string{"Aguas Termales", "Saneamiento Zen"}},
		}},
		{ID: "HONGO", Name: "País Hongo", Emoji: "🍄", Description: "Innovación Micelar y Tuberías", Services: []models.ServiceCategory{
			{Title: "Infraestructura", Type: models.ServiceUtility, Items: []string{"Mantenimiento Tuberías", "Red Micelio"}},
			{Title: "Conectividad", Type: models.ServicePhone, Items: []string{"StarMushroom", "ToadNet"}},
		}},
		{ID: "PERRITO", Name: "País Perrito", Emoji: "🐶", Description: "Lealtad y Parques Públicos", Services: []models.ServiceCategory{
			{Title: "Ciudadanía", Type: models.ServicePublic, Items: []string{"Licencia de Hueso", "Registro Canino"}},
			{Title: "Salud", Type: models.ServicePublic, Items: []string{"Veterinaria Pública", "Seguro de Cola"}},
		}},
		{ID: "PINGUI", Name: "País Pingüino", Emoji: "🐧", Description: "Tecnología y Hielo", Services: []models.ServiceCategory{
			{Title: "Tech", Type: models.ServicePhone, Items: []string{"Linux Server Hosting", "Fibra Óptica Glaciar"}},
			{Title: "Climatización", Type: models.ServiceUtility, Items: []string{"Refrigeración Central", "Deshielo Urbano"}},
		}},
	}
}

func openingChat() []models.ChatMessage {
	return []models.ChatMessage{
		{ID: "1", User: "Bibubib", Text: "Reunión del Consejo a las 14:00. Asistencia obligatoria.", Time: "09:00", Type: "system"},
		{ID: "2", User: "Oso Pepe", Text: "Producción industrial subió un 400%.", Time: "09:15", Type: "user"},
	}
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cluster is one of the three fixed organizational region tags.
type Cluster string

const (
	ClusterNorte  Cluster = "Cluster Norte"
	ClusterCentro Cluster = "Cluster Centro"
	ClusterSur    Cluster = "Cluster Sur"
)

// AllClusters lists the accepted cluster values in display order.
var AllClusters = []Cluster{ClusterNorte, ClusterCentro, ClusterSur}

// ValidCluster reports whether value is one of the accepted clusters.
func ValidCluster(value string) bool {
	for _, c := range AllClusters {
		if string(c) == value {
			return true
		}
	}
	return false
}

// FormResponse is one persisted alternativa registration. Rows are written
// once at submission time and never updated; each row embeds a copy of the
// shared header fields, there is no parent batch record.
type FormResponse struct {
	ID                 int64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Cluster            string          `gorm:"column:cluster;size:50;not null" json:"cluster"`
	CorreoArellano     string          `gorm:"column:correo_arellano;size:255;not null" json:"correoArellano"`
	CodigoAlternativa  int             `gorm:"column:codigo_alternativa;not null" json:"codigoAlternativa"`
	ProductDesc        *string         `gorm:"column:product_desc;size:255" json:"productDesc"`
	Nankey             *float64        `gorm:"column:nankey" json:"nankey"`
	InventarioSala     *int            `gorm:"column:inventario_sala" json:"inventarioSala"`
	InventarioDeposito *int            `gorm:"column:inventario_deposito" json:"inventarioDeposito"`
	InventarioFrio     *int            `gorm:"column:inventario_frio" json:"inventarioFrio"`
	Precio             decimal.Decimal `gorm:"column:precio;type:numeric(18,2);not null" json:"precio"`
	CreatedAt          time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (FormResponse) TableName() string {
	return "form_alternativas_responses"
}

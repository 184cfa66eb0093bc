// Package domain contains catalog entities without logic, just meta-data.
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ModelPosition is a point in the store scene. Zero value is the origin.
type ModelPosition struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
	Z float64 `json:"z" bson:"z"`
}

// Model3D is one placeable asset inside a store scene.
type Model3D struct {
	ID       string        `json:"id" bson:"id"`
	URL      string        `json:"url" bson:"url"`
	Position ModelPosition `json:"position" bson:"position"`
	Size     float64       `json:"size" bson:"size"`
}

// Store is the persisted scene document.
type Store struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name"`
	ImageURL      string             `json:"imageUrl" bson:"imageUrl"`
	Domain        string             `json:"domain,omitempty" bson:"domain,omitempty"`
	VideoURL      string             `json:"videoUrl,omitempty" bson:"videoUrl,omitempty"`
	ClickableLink string             `json:"clickableLink,omitempty" bson:"clickableLink,omitempty"`
	Models        []Model3D          `json:"models" bson:"models"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// StoreListItem is the projected shape returned by the list endpoint.
type StoreListItem struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id"`
	Name     string             `json:"name" bson:"name"`
	ImageURL string             `json:"imageUrl" bson:"imageUrl"`
	Domain   string             `json:"domain,omitempty" bson:"domain,omitempty"`
}

// StoreCreate carries a new store. Models may be empty.
type StoreCreate struct {
	Name          string    `json:"name" binding:"required"`
	ImageURL      string    `json:"imageUrl" binding:"required"`
	Domain        string    `json:"domain"`
	VideoURL      string    `json:"videoUrl"`
	ClickableLink string    `json:"clickableLink"`
	Models        []Model3D `json:"models"`
}

// StoreUpdate carries a partial update; nil fields are left untouched.
type StoreUpdate struct {
	Name          *string    `json:"name"`
	ImageURL      *string    `json:"imageUrl"`
	Domain        *string    `json:"domain"`
	VideoURL      *string    `json:"videoUrl"`
	ClickableLink *string    `json:"clickableLink"`
	Models        *[]Model3D `json:"models"`
}

// ModelPositionUpdate repositions one model inside a store.
type ModelPositionUpdate struct {
	ModelID  string        `json:"modelId" binding:"required"`
	Position ModelPosition `json:"position"`
}

// WidgetConfig is what the embeddable widget needs to boot on a host page.
type WidgetConfig struct {
	Domain        string `json:"domain"`
	VideoURL      string `json:"videoUrl"`
	ClickableLink string `json:"clickableLink"`
	StoreName     string `json:"storeName"`
	StoreID       string `json:"storeId"`
}

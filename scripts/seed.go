package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/esenciapy/backend/internal/adapters/search"
	"github.com/esenciapy/backend/internal/domain/entities"
	"github.com/esenciapy/backend/internal/infrastructure/clients/postgres"
	"github.com/esenciapy/backend/internal/infrastructure/clients/typesense"
	"github.com/esenciapy/backend/pkg/config"
	"github.com/esenciapy/backend/pkg/utils"
)

type seedBrand struct {
	id   string
	name string
}

type seedProduct struct {
	product  entities.Product
	families []string
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	var searchIndex *search.TypesenseAdapter
	if tsClient, err := typesense.NewClient(&cfg.Typesense); err == nil {
		searchIndex = search.NewTypesenseAdapter(tsClient)
		if err := searchIndex.InitSchema(context.Background()); err != nil {
			log.Printf("Failed to init Typesense schema, skipping indexing: %v", err)
			searchIndex = nil
		}
	}

	ctx := context.Background()
	db := pgClient.DB()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := db.ExecContext(ctx, `
			TRUNCATE TABLE
				product_scent_families,
				match_records,
				search_events,
				user_preference_profiles,
				products,
				scent_families,
				brands
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to reset tables: %v", err)
		}
	}

	// 1. Brands
	brands := []seedBrand{
		{id: uuid.NewString(), name: "Lattafa"},
		{id: uuid.NewString(), name: "Armaf"},
		{id: uuid.NewString(), name: "Maison Alhambra"},
		{id: uuid.NewString(), name: "Al Haramain"},
		{id: uuid.NewString(), name: "Rasasi"},
	}
	brandID := map[string]string{}
	for _, b := range brands {
		if _, err := db.ExecContext(ctx,
			`INSERT INTO brands (id, name, created_at, updated_at)
			 VALUES ($1, $2, NOW(), NOW())
			 ON CONFLICT (name) DO NOTHING`,
			b.id, b.name,
		); err != nil {
			log.Printf("Failed to create brand %s: %v", b.name, err)
			continue
		}
		brandID[b.name] = b.id
	}

	// 2. Scent families
	familyNames := []string{
		"Oriental", "Amaderado", "Cítrico", "Floral", "Dulce",
		"Especiado", "Fresco", "Avainillado", "Frutal", "Cuero",
	}
	familyID := map[string]string{}
	for _, name := range familyNames {
		id := uuid.NewString()
		if _, err := db.ExecContext(ctx,
			`INSERT INTO scent_families (id, name, slug)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (slug) DO NOTHING`,
			id, name, utils.Slugify(name),
		); err != nil {
			log.Printf("Failed to create scent family %s: %v", name, err)
			continue
		}
		familyID[name] = id
	}

	// 3. Products (prices in guaraníes)
	seeds := []seedProduct{
		{
			product: entities.Product{
				Name: "Asad", SKU: "LAT-ASAD-100", BrandID: brandID["Lattafa"],
				Gender: entities.GenderHombre, Concentration: "EDP",
				Intensity: entities.IntensityAlta,
				Occasions: []string{entities.OccasionNocturno, entities.OccasionFormal},
				Climates:  []string{entities.ClimateFrio, entities.ClimateTemplado},
				Events:    []string{entities.EventFiesta, entities.EventCita},
				Price:     280000,
				Attributes: entities.ProductAttributes{
					Notes: entities.ScentNotes{
						Top:   []string{"piña", "pimienta negra", "tabaco"},
						Heart: []string{"café", "iris", "lavanda"},
						Base:  []string{"vainilla", "ámbar", "pachulí"},
					},
					Sillage: "Fuerte", Longevity: "8-10h",
					Seasons:   map[string]float64{"verano": 30, "otono": 85, "invierno": 95, "primavera": 50},
					TimeOfDay: entities.TimeOfDaySuitability{Day: 35, Night: 95},
				},
			},
			families: []string{"Oriental", "Avainillado", "Especiado"},
		},
		{
			product: entities.Product{
				Name: "Khamrah", SKU: "LAT-KHAM-100", BrandID: brandID["Lattafa"],
				Gender: entities.GenderUnisex, Concentration: "EDP",
				Intensity: entities.IntensityAlta,
				Occasions: []string{entities.OccasionNocturno, entities.OccasionRomantico},
				Climates:  []string{entities.ClimateFrio},
				Events:    []string{entities.EventCita, entities.EventFiesta},
				Price:     320000,
				Attributes: entities.ProductAttributes{
					Notes: entities.ScentNotes{
						Top:   []string{"canela", "nuez moscada", "bergamota"},
						Heart: []string{"dátil", "praliné", "tuberosa"},
						Base:  []string{"vainilla", "tonka", "benjuí"},
					},
					Sillage: "Fuerte", Longevity: "10h+",
					Seasons:   map[string]float64{"verano": 20, "otono": 90, "invierno": 95, "primavera": 40},
					TimeOfDay: entities.TimeOfDaySuitability{Day: 30, Night: 90},
				},
			},
			families: []string{"Oriental", "Dulce", "Especiado"},
		},
		{
			product: entities.Product{
				Name: "Club de Nuit Intense Man", SKU: "ARM-CDNI-105", BrandID: brandID["Armaf"],
				Gender: entities.GenderHombre, Concentration: "EDT",
				Intensity: entities.IntensityAlta,
				Occasions: []string{entities.OccasionNocturno, entities.OccasionFormal},
				Climates:  []string{entities.ClimateTemplado, entities.ClimateFrio},
				Events:    []string{entities.EventTrabajo, entities.EventFiesta},
				Price:     250000,
				Attributes: entities.ProductAttributes{
					Notes: entities.ScentNotes{
						Top:   []string{"limón", "piña", "manzana"},
						Heart: []string{"abedul", "jazmín", "rosa"},
						Base:  []string{"almizcle", "ámbar gris", "vainilla"},
					},
					Sillage: "Fuerte", Longevity: "8h",
					Seasons:   map[string]float64{"verano": 40, "otono": 80, "invierno": 85, "primavera": 60},
					TimeOfDay: entities.TimeOfDaySuitability{Day: 50, Night: 85},
				},
			},
			families: []string{"Amaderado", "Frutal"},
		},
		{
			product: entities.Product{
				Name: "Yara", SKU: "LAT-YARA-100", BrandID: brandID["Lattafa"],
				Gender: entities.GenderMujer, Concentration: "EDP",
				Intensity: entities.IntensityModerada,
				Occasions: []string{entities.OccasionCasual, entities.OccasionRomantico},
				Climates:  []string{entities.ClimateTemplado, entities.ClimateCalor},
				Events:    []string{entities.EventCita, entities.EventTerere},
				Price:     230000,
				Attributes: entities.ProductAttributes{
					Notes: entities.ScentNotes{
						Top:   []string{"orquídea", "heliotropo"},
						Heart: []string{"frutas tropicales", "gourmand"},
						Base:  []string{"vainilla", "almizcle", "sándalo"},
					},
					Sillage: "Moderado", Longevity: "6-8h",
					Seasons:   map[string]float64{"verano": 70, "otono": 60, "invierno": 55, "primavera": 85},
					TimeOfDay: entities.TimeOfDaySuitability{Day: 80, Night: 60},
				},
			},
			families: []string{"Dulce", "Floral", "Avainillado"},
		},
		{
			product: entities.Product{
				Name: "Kenzi", SKU: "MAH-KENZ-100", BrandID: brandID["Maison Alhambra"],
				Gender: entities.GenderMujer, Concentration: "EDP",
				Intensity: entities.IntensityBaja,
				Occasions: []string{entities.OccasionDiurno, entities.OccasionCasual},
				Climates:  []string{entities.ClimateCalor},
				Events:    []string{entities.EventTerere, entities.EventTrabajo},
				Price:     180000,
				Attributes: entities.ProductAttributes{
					Notes: entities.ScentNotes{
						Top:   []string{"mandarina", "grosella negra"},
						Heart: []string{"peonía", "rosa"},
						Base:  []string{"almizcle blanco", "cedro"},
					},
					Sillage: "Suave", Longevity: "5-6h",
					Seasons:   map[string]float64{"verano": 90, "otono": 40, "invierno": 25, "primavera": 85},
					TimeOfDay: entities.TimeOfDaySuitability{Day: 90, Night: 40},
				},
			},
			families: []string{"Floral", "Frutal", "Fresco"},
		},
		{
			product: entities.Product{
				Name: "L'Aventure", SKU: "AH-LAVE-100", BrandID: brandID["Al Haramain"],
				Gender: entities.GenderHombre, Concentration: "EDP",
				Intensity: entities.IntensityModerada,
				Occasions: []string{entities.OccasionDiurno, entities.OccasionDeportivo},
				Climates:  []string{entities.ClimateCalor, entities.ClimateTemplado},
				Events:    []string{entities.EventAsado, entities.EventTrabajo},
				Price:     290000,
				Attributes: entities.ProductAttributes{
					Notes: entities.ScentNotes{
						Top:   []string{"limón", "bergamota"},
						Heart: []string{"elemí", "notas marinas"},
						Base:  []string{"almizcle", "madera de gaiac"},
					},
					Sillage: "Moderado", Longevity: "6h",
					Seasons:   map[string]float64{"verano": 85, "otono": 50, "invierno": 30, "primavera": 80},
					TimeOfDay: entities.TimeOfDaySuitability{Day: 85, Night: 45},
				},
			},
			families: []string{"Cítrico", "Fresco", "Amaderado"},
		},
		{
			product: entities.Product{
				Name: "Hawas", SKU: "RAS-HAWA-100", BrandID: brandID["Rasasi"],
				Gender: entities.GenderHombre, Concentration: "EDP",
				Intensity: entities.IntensityModerada,
				Occasions: []string{entities.OccasionDiurno, entities.OccasionDeportivo, entities.OccasionCasual},
				Climates:  []string{entities.ClimateCalor},
				Events:    []string{entities.EventAsado, entities.EventTerere},
				Price:     340000,
				Attributes: entities.ProductAttributes{
					Notes: entities.ScentNotes{
						Top:   []string{"manzana", "bergamota", "limón"},
						Heart: []string{"canela", "azafrán", "acuático"},
						Base:  []string{"ámbar gris", "almizcle"},
					},
					Sillage: "Fuerte", Longevity: "8h",
					Seasons:   map[string]float64{"verano": 95, "otono": 45, "invierno": 25, "primavera": 80},
					TimeOfDay: entities.TimeOfDaySuitability{Day: 90, Night: 55},
				},
			},
			families: []string{"Fresco", "Cítrico", "Frutal"},
		},
	}

	seeded := 0
	for _, s := range seeds {
		p := s.product
		p.ID = uuid.NewString()
		p.IsActive = true
		p.CreatedAt = time.Now()
		p.UpdatedAt = time.Now()

		attrs, err := json.Marshal(p.Attributes)
		if err != nil {
			log.Printf("Failed to encode attributes for %s: %v", p.Name, err)
			continue
		}

		_, err = db.ExecContext(ctx,
			`INSERT INTO products
				(id, name, sku, brand_id, gender, concentration, intensity,
				 occasions, climates, events, price, attributes, is_active, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
			 ON CONFLICT (sku) DO NOTHING`,
			p.ID, p.Name, p.SKU, p.BrandID, p.Gender, p.Concentration, p.Intensity,
			pq.Array(p.Occasions), pq.Array(p.Climates), pq.Array(p.Events),
			p.Price, attrs, p.IsActive, p.CreatedAt, p.UpdatedAt,
		)
		if err != nil {
			log.Printf("Failed to create product %s: %v", p.Name, err)
			continue
		}

		for _, family := range s.families {
			id, ok := familyID[family]
			if !ok {
				continue
			}
			if _, err := db.ExecContext(ctx,
				`INSERT INTO product_scent_families (product_id, family_id)
				 VALUES ($1, $2)
				 ON CONFLICT (product_id, family_id) DO NOTHING`,
				p.ID, id,
			); err != nil {
				log.Printf("Failed to link family %s to product %s: %v", family, p.Name, err)
			}
		}

		if searchIndex != nil {
			if err := searchIndex.Index(ctx, &p); err != nil {
				log.Printf("Failed to index product %s: %v", p.Name, err)
			}
		}

		seeded++
	}

	log.Printf("Seeding completed: %d brands, %d scent families, %d products", len(brands), len(familyID), seeded)
}

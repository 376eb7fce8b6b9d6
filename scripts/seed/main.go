// Package main implements a standalone seed script that populates the
// catalog database with realistic test data. It connects to PostgreSQL
// directly, creates the products table if it does not exist, and inserts
// a mix of professors, classes, and schools in batches.
//
// Usage:
//
//	POSTGRES_HOST=localhost SEED_COUNT=1000 go run .
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("invalid %s: %v", key, err)
		}
		return n
	}
	return fallback
}

const createTableSQL = `
CREATE TABLE IF NOT EXISTS products (
	id          BIGSERIAL PRIMARY KEY,
	name        TEXT NOT NULL,
	department  TEXT NOT NULL DEFAULT '',
	type        TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	address     TEXT NOT NULL DEFAULT '',
	links       TEXT NOT NULL DEFAULT '',
	picture     TEXT NOT NULL DEFAULT '',
	point       TEXT NOT NULL DEFAULT '',
	grade_from  INT NOT NULL DEFAULT 0,
	grade_to    INT NOT NULL DEFAULT 0,
	score       INT NOT NULL DEFAULT 50,
	difficulty  INT NOT NULL DEFAULT 50,
	reviews     INT NOT NULL DEFAULT 0,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_products_department ON products (department);
`

const insertSQL = `
INSERT INTO products (name, department, type, description, address, links, picture, point, grade_from, grade_to, score, difficulty, reviews)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

var departments = []string{"Toán", "Văn", "Lý", "Hóa", "Sinh", "Anh", "Sử", "Địa", "Tin"}

var lastNames = []string{"Nguyễn", "Trần", "Lê", "Phạm", "Hoàng", "Vũ", "Đặng", "Bùi", "Đỗ", "Hồ"}

var firstNames = []string{"An", "Bình", "Châu", "Dũng", "Hà", "Hùng", "Lan", "Minh", "Ngọc", "Phương", "Quân", "Thảo", "Trang", "Tuấn"}

var districts = []string{"Ba Đình", "Hoàn Kiếm", "Đống Đa", "Cầu Giấy", "Thanh Xuân", "Hai Bà Trưng", "Tây Hồ", "Long Biên"}

type seedRow struct {
	name        string
	department  string
	productType string
	description string
	address     string
	links       string
	picture     string
	point       string
	gradeFrom   int
	gradeTo     int
	score       int
	difficulty  int
	reviews     int
}

func randomRow(rng *rand.Rand, i int) seedRow {
	dept := departments[rng.Intn(len(departments))]
	district := districts[rng.Intn(len(districts))]
	address := fmt.Sprintf("%d Phố %s, %s, Hà Nội", rng.Intn(200)+1, district, district)
	point := fmt.Sprintf("POINT(%.6f %.6f)", 105.8+rng.Float64()*0.2, 21.0+rng.Float64()*0.1)

	row := seedRow{
		department: dept,
		address:    address,
		point:      point,
		score:      rng.Intn(101),
		difficulty: rng.Intn(101),
		reviews:    rng.Intn(500),
	}

	switch i % 3 {
	case 0:
		row.productType = "PROFESSOR"
		row.name = fmt.Sprintf("%s %s", lastNames[rng.Intn(len(lastNames))], firstNames[rng.Intn(len(firstNames))])
		row.description = fmt.Sprintf("Giáo viên %s với %d năm kinh nghiệm luyện thi", dept, rng.Intn(25)+1)
		row.links = fmt.Sprintf("https://example.com/teacher/%d", i)
	case 1:
		row.productType = "CLASS"
		row.gradeFrom = rng.Intn(9) + 1
		row.gradeTo = row.gradeFrom + rng.Intn(12-row.gradeFrom+1)
		row.name = fmt.Sprintf("Lớp %s nâng cao %d", dept, i)
		row.description = fmt.Sprintf("Lớp học %s cho học sinh lớp %d đến lớp %d", dept, row.gradeFrom, row.gradeTo)
	default:
		row.productType = "SCHOOL"
		row.name = fmt.Sprintf("Trường THPT %s %d", district, i)
		row.description = fmt.Sprintf("Trường công lập tại %s, thế mạnh môn %s", district, dept)
		row.links = fmt.Sprintf("https://example.com/school/%d", i)
	}

	return row
}

func main() {
	host := getEnv("POSTGRES_HOST", "localhost")
	port := getEnv("POSTGRES_PORT", "5432")
	user := getEnv("POSTGRES_USER", "catalog")
	password := getEnv("POSTGRES_PASSWORD", "catalog_secret")
	dbName := getEnv("POSTGRES_DB", "catalog")
	count := getEnvInt("SEED_COUNT", 1000)
	batchSize := getEnvInt("SEED_BATCH_SIZE", 100)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, dbName)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("ping postgres: %v", err)
	}

	if _, err := pool.Exec(ctx, createTableSQL); err != nil {
		log.Fatalf("create products table: %v", err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	start := time.Now()
	inserted := 0

	for inserted < count {
		n := batchSize
		if remaining := count - inserted; remaining < n {
			n = remaining
		}

		batch := &pgx.Batch{}
		for i := 0; i < n; i++ {
			row := randomRow(rng, inserted+i)
			batch.Queue(insertSQL,
				row.name, row.department, row.productType, row.description,
				row.address, row.links, row.picture, row.point,
				row.gradeFrom, row.gradeTo, row.score, row.difficulty, row.reviews,
			)
		}

		results := pool.SendBatch(ctx, batch)
		for i := 0; i < n; i++ {
			if _, err := results.Exec(); err != nil {
				results.Close()
				log.Fatalf("insert product %d: %v", inserted+i, err)
			}
		}
		if err := results.Close(); err != nil {
			log.Fatalf("close batch: %v", err)
		}

		inserted += n
		log.Printf("seeded %d/%d products", inserted, count)
	}

	log.Printf("done: %d products in %s", inserted, time.Since(start).Round(time.Millisecond))
}

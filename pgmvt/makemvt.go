package pgmvt

import (
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"
)

type MVTTile struct {
	MVT []byte
}

// tileTableName is the per-layer cache table holding generated tiles.
func tileTableName(tableName string) string {
	return tableName + "_mvt"
}

func GetTableColumns(db *gorm.DB, tableName string) ([]string, error) {
	var columns []string
	rows, err := db.Raw("SELECT column_name FROM information_schema.columns WHERE table_name = ?", tableName).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var column string
		if err := rows.Scan(&column); err != nil {
			return nil, err
		}
		if column != "geom" {
			columns = append(columns, column)
		}
	}
	return columns, rows.Err()
}

// MakeMVT returns the vector tile for (x, y, z) of the layer table: the
// cache table first, ST_AsMVT generation on a miss. Generated tiles are
// written back so the next request is a read.
func MakeMVT(x int, y int, z int, tableName string, db *gorm.DB) []byte {
	cacheTable := tileTableName(tableName)
	ensureTileTable(db, cacheTable)

	var cached []map[string]interface{}
	query := fmt.Sprintf("SELECT * FROM %s WHERE x = ? AND y = ? AND z = ?", cacheTable)
	db.Raw(query, x, y, z).Scan(&cached)

	if len(cached) > 0 {
		// duplicate rows can appear when two requests generated the same
		// missing tile; keep the first and drop the rest
		for i := 1; i < len(cached); i++ {
			db.Exec(fmt.Sprintf("DELETE FROM %s WHERE id = ?", cacheTable), cached[i]["id"])
		}
		byteData, _ := cached[0]["byte"].([]byte)
		return byteData
	}

	fieldNames, _ := GetTableColumns(db, tableName)
	quotedFields := make([]string, len(fieldNames))
	for i, field := range fieldNames {
		quotedFields[i] = fmt.Sprintf("\"%s\"", field)
	}
	fields := strings.Join(quotedFields, ",")

	boundMin := XyzLonLat(float64(x), float64(y), float64(z))
	boundMax := XyzLonLat(float64(x)+1, float64(y)+1, float64(z))
	sql := fmt.Sprintf("SELECT ST_AsMVT(P, '%s', 4096, 'geom') AS \"mvt\" "+
		"FROM (SELECT ST_AsMVTGeom(ST_Transform(geom, 3857), ST_Transform(ST_MakeEnvelope(%v, %v, %v, %v, 4326), 3857), 4096, 32, TRUE) AS geom, %s "+
		"FROM \"%s\" WHERE \"geom\" && ST_MakeEnvelope(%v, %v, %v, %v, 4326)) AS P",
		tableName, boundMin[0], boundMax[1], boundMax[0], boundMin[1], fields, tableName, boundMin[0], boundMax[1], boundMax[0], boundMin[1])

	var mvttile MVTTile
	db.Raw(sql).Scan(&mvttile)
	if len(mvttile.MVT) == 0 {
		return nil
	}

	insert := fmt.Sprintf("INSERT INTO %s (x, y, z, byte) VALUES (?, ?, ?, ?)", cacheTable)
	db.Exec(insert, x, y, z, mvttile.MVT)
	return mvttile.MVT
}

func ensureTileTable(db *gorm.DB, cacheTable string) {
	create := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (id BIGSERIAL PRIMARY KEY, x BIGINT, y BIGINT, z BIGINT, byte BYTEA)", cacheTable)
	if err := db.Exec(create).Error; err != nil {
		log.Printf("ensure tile table %s: %v", cacheTable, err)
		return
	}
	if !indexExists(db, cacheTable, "idx_xyz_"+cacheTable) {
		createIndexSQL := fmt.Sprintf("CREATE INDEX idx_xyz_%s ON %s (x, y, z)", cacheTable, cacheTable)
		db.Exec(createIndexSQL)
	}
}

func indexExists(db *gorm.DB, tableName, indexName string) bool {
	var count int64
	db.Raw(`
		SELECT COUNT(*)
		FROM pg_indexes
		WHERE tablename = ? AND indexname = ?
	`, tableName, indexName).Scan(&count)
	return count > 0
}

// DelMVT drops cached tiles touching the geometry. Large extents flush the
// whole layer instead of enumerating thousands of tiles.
func DelMVT(db *gorm.DB, tablename string, tiles []Tile) {
	if len(tiles) == 0 {
		return
	}
	cacheTable := tileTableName(tablename)
	if len(tiles) > 200 {
		DelMVTAll(db, tablename)
		return
	}

	query := db.Table(cacheTable)
	for i, t := range tiles {
		if i == 0 {
			query = query.Where("(x = ? AND y = ? AND z = ?)", t.X, t.Y, t.Z)
		} else {
			query = query.Or("(x = ? AND y = ? AND z = ?)", t.X, t.Y, t.Z)
		}
	}
	if err := query.Delete(nil).Error; err != nil {
		log.Printf("tile invalidation failed: %v", err)
	}
}

func DelMVTAll(db *gorm.DB, tablename string) {
	cacheTable := tileTableName(tablename)
	result := db.Table(cacheTable).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(nil)
	if result.Error != nil {
		log.Printf("error deleting all tiles from %s: %v", cacheTable, result.Error)
	}
}

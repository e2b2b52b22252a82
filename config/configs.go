package config

import (
	"encoding/xml"
	"fmt"
	"os"
)

var MainRouter string
var DSN string
var Driver string
var Dbname string
var DetailAPI string
var Download string
var ChromeBin string
var TileCacheSize int
var TileCacheTTL int
var MainConfig Config

type Config struct {
	XMLName       xml.Name `xml:"config"`
	MainRouter    string   `xml:"MainRouter"`
	Driver        string   `xml:"driver"`
	Dbname        string   `xml:"dbname"`
	Host          string   `xml:"host"`
	Port          string   `xml:"port"`
	Username      string   `xml:"user"`
	Password      string   `xml:"password"`
	DetailAPI     string   `xml:"DetailAPI"`
	Download      string   `xml:"download"`
	ChromeBin     string   `xml:"ChromeBin"`
	TileCacheSize int      `xml:"TileCacheSize"`
	TileCacheTTL  int      `xml:"TileCacheTTL"`
}

func init() {

	// defaults keep the server and tests runnable without a config.xml
	MainConfig = Config{
		MainRouter:    "0.0.0.0:8426",
		Driver:        "postgres",
		Dbname:        "parcels",
		Host:          "127.0.0.1",
		Port:          "5432",
		Username:      "postgres",
		DetailAPI:     "http://127.0.0.1:8426",
		Download:      "./Download",
		TileCacheSize: 2000,
		TileCacheTTL:  600,
	}

	xmlFile, err := os.Open("config.xml")
	if err == nil {
		defer xmlFile.Close()
		xmlDecoder := xml.NewDecoder(xmlFile)
		if err = xmlDecoder.Decode(&MainConfig); err != nil {
			fmt.Println("Error  decoding  XML:", err)
		}
	}

	MainRouter = MainConfig.MainRouter
	Driver = MainConfig.Driver
	Dbname = MainConfig.Dbname
	DetailAPI = MainConfig.DetailAPI
	Download = MainConfig.Download
	ChromeBin = MainConfig.ChromeBin
	TileCacheSize = MainConfig.TileCacheSize
	TileCacheTTL = MainConfig.TileCacheTTL

	DSN = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC", MainConfig.Host, MainConfig.Username, MainConfig.Password, MainConfig.Dbname, MainConfig.Port)
	if Driver == "mysql" {
		DSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC", MainConfig.Username, MainConfig.Password, MainConfig.Host, MainConfig.Port, MainConfig.Dbname)
	}
}

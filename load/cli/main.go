package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	vegeta "github.com/tsenart/vegeta/v12/lib"
)

const (
	defaultBaseURL     = "http://localhost:8080"
	defaultRate        = 5
	defaultDuration    = 60 * time.Second
	defaultResultsFile = "load/artifacts/results.bin"
)

var resultsFile = defaultResultsFile

// defaultPaths чтение доски: кэшированный JSON, HTML-страница и предпросмотр розыгрыша.
var defaultPaths = []string{
	"/api/board",
	"/",
	"/api/lottery/preview?entry=alice&entry=alice&entry=bob&entry=carol",
}

func main() {
	var (
		baseURL     = flag.String("url", defaultBaseURL, "Base URL сервиса")
		rate        = flag.Int("rate", defaultRate, "Запросов в секунду")
		duration    = flag.Duration("duration", defaultDuration, "Длительность теста (например, 60s)")
		targetsPath = flag.String("targets", "", "Файл целей в формате vegeta http (вместо набора по умолчанию)")
		setupOnly   = flag.Bool("setup-only", false, "Только прогрев доски")
		report      = flag.Bool("report", false, "Показать отчёт из сохранённых результатов")
		plot        = flag.Bool("plot", false, "Сгенерировать HTML график из сохранённых результатов")
	)
	flag.Parse()

	if *report {
		showReport()
		return
	}

	if *plot {
		generatePlot()
		return
	}

	if *setupOnly {
		if err := warmUpBoard(*baseURL); err != nil {
			log.Fatalf("Ошибка при прогреве доски: %v", err)
		}
		return
	}

	// Полный цикл: прогрев + нагрузочное тестирование
	fmt.Println("=== Нагрузочное тестирование с Vegeta ===")
	fmt.Printf("URL: %s\n", *baseURL)
	fmt.Printf("Rate: %d req/s\n", *rate)
	fmt.Printf("Duration: %s\n", *duration)
	fmt.Println()

	fmt.Println("1. Прогрев доски...")
	if err := warmUpBoard(*baseURL); err != nil {
		log.Fatalf("Ошибка при прогреве доски: %v", err)
	}

	targeter, err := newTargeter(*baseURL, *targetsPath)
	if err != nil {
		log.Fatalf("Ошибка при чтении целей: %v", err)
	}

	fmt.Println()
	fmt.Println("2. Запуск нагрузочного тестирования...")
	if err := runLoadTest(targeter, *rate, *duration); err != nil {
		log.Fatalf("Ошибка при нагрузочном тестировании: %v", err)
	}

	fmt.Println()
	fmt.Println("=== Тестирование завершено ===")
	fmt.Println("Для детального анализа выполните:")
	fmt.Printf("  go run ./load/cli -report\n")
	fmt.Printf("  go run ./load/cli -plot\n")
}

// warmUpBoard один раз пересобирает доску, чтобы атака шла по кэшу, а не по GitHub.
func warmUpBoard(baseURL string) error {
	targeter := vegeta.NewStaticTargeter(vegeta.Target{
		Method: http.MethodPost,
		URL:    baseURL + "/api/board/refresh",
	})

	attacker := vegeta.NewAttacker()
	var metrics vegeta.Metrics

	for res := range attacker.Attack(targeter, vegeta.Rate{Freq: 1, Per: time.Second}, time.Second, "warm-up") {
		metrics.Add(res)
	}
	metrics.Close()

	if metrics.StatusCodes["200"] == 0 {
		return fmt.Errorf("не удалось собрать доску: статус %v", metrics.StatusCodes)
	}

	fmt.Println("Доска собрана и закэширована")
	return nil
}

// newTargeter читает цели из файла или обходит defaultPaths по кругу.
func newTargeter(baseURL, targetsPath string) (vegeta.Targeter, error) {
	if targetsPath == "" {
		return newRoundRobinTargeter(baseURL, defaultPaths), nil
	}
	data, err := os.ReadFile(targetsPath)
	if err != nil {
		return nil, fmt.Errorf("read targets: %w", err)
	}
	targets, err := vegeta.ReadAllTargets(vegeta.NewHTTPTargeter(bytes.NewReader(data), nil, nil))
	if err != nil {
		return nil, fmt.Errorf("parse targets: %w", err)
	}
	return vegeta.NewStaticTargeter(targets...), nil
}

func newRoundRobinTargeter(baseURL string, paths []string) vegeta.Targeter {
	var next atomic.Uint64
	return func(t *vegeta.Target) error {
		i := next.Add(1) - 1
		*t = vegeta.Target{
			Method: http.MethodGet,
			URL:    baseURL + paths[i%uint64(len(paths))],
		}
		return nil
	}
}

// runLoadTest запускает нагрузочное тестирование
func runLoadTest(targeter vegeta.Targeter, rate int, duration time.Duration) error {
	if rate <= 0 {
		return fmt.Errorf("rate must be positive, got %d", rate)
	}

	// Настраиваем атакующего
	workers := uint64(rate)
	attacker := vegeta.NewAttacker(
		vegeta.Timeout(30*time.Second),
		vegeta.Workers(workers),
	)

	var metrics vegeta.Metrics
	rateLimit := vegeta.Rate{Freq: rate, Per: time.Second}

	// Собираем результаты
	var allResults []vegeta.Result
	for res := range attacker.Attack(targeter, rateLimit, duration, "load-test") {
		metrics.Add(res)
		allResults = append(allResults, *res)
	}
	metrics.Close()

	// Сохраняем результаты в файл
	if err := saveResults(allResults); err != nil {
		return fmt.Errorf("сохранить результаты: %w", err)
	}

	// Выводим отчёт
	reporter := vegeta.NewTextReporter(&metrics)
	if err := reporter(os.Stdout); err != nil {
		return fmt.Errorf("сгенерировать отчёт: %w", err)
	}

	return nil
}

// saveResults сохраняет результаты в бинарный файл
func saveResults(results []vegeta.Result) error {
	if err := os.MkdirAll(filepath.Dir(resultsFile), 0o755); err != nil {
		return fmt.Errorf("создать директорию: %w", err)
	}

	file, err := os.Create(resultsFile)
	if err != nil {
		return fmt.Errorf("создать файл: %w", err)
	}
	defer file.Close()

	encoder := vegeta.NewEncoder(file)
	for i := range results {
		if err := encoder.Encode(&results[i]); err != nil {
			return fmt.Errorf("записать результат: %w", err)
		}
	}

	fmt.Printf("Результаты сохранены в %s\n", resultsFile)
	return nil
}

// showReport показывает отчёт из сохранённых результатов
func showReport() {
	if err := renderReport(os.Stdout, resultsFile); err != nil {
		log.Fatalf("Не удалось построить отчёт: %v", err)
	}
}

func renderReport(out io.Writer, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open results: %w", err)
	}
	defer file.Close()

	decoder := vegeta.NewDecoder(file)
	var metrics vegeta.Metrics

	for {
		var res vegeta.Result
		if err := decoder.Decode(&res); err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("decode result: %w", err)
		}
		metrics.Add(&res)
	}
	metrics.Close()

	reporter := vegeta.NewTextReporter(&metrics)
	if err := reporter(out); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

// generatePlot генерирует HTML график из сохранённых результатов
// Использует CLI утилиту vegeta для генерации графика
func generatePlot() {
	writePlotInstructions(os.Stdout)
}

func writePlotInstructions(out io.Writer) {
	fmt.Fprintln(out, "Для генерации HTML графика используйте CLI утилиту vegeta:")
	fmt.Fprintf(out, "  vegeta plot %s > load/artifacts/plot.html\n", resultsFile)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Установка CLI утилиты:")
	fmt.Fprintln(out, "  go install github.com/tsenart/vegeta/v12@latest")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Или используйте сохранённые результаты для анализа через другие инструменты.")
}

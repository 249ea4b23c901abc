// Comando de importação do cadastro legado (stores_data.json) para o Postgres.
//
//	go run ./infrastructure/migration/script -file stores_data.json -admin-email admin@empresa.com
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/Chelsea-799/ga4-analytics-tool/infrastructure/database/postgres"
	"github.com/Chelsea-799/ga4-analytics-tool/infrastructure/integrator/catalog"
	"github.com/Chelsea-799/ga4-analytics-tool/infrastructure/integrator/google/googleauth"
	"github.com/Chelsea-799/ga4-analytics-tool/infrastructure/repository"
	"github.com/Chelsea-799/ga4-analytics-tool/internal/config"
	"github.com/Chelsea-799/ga4-analytics-tool/internal/domain"
	"github.com/Chelsea-799/ga4-analytics-tool/internal/metrics"
	"github.com/Chelsea-799/ga4-analytics-tool/internal/usecases/authenticating"
	"github.com/Chelsea-799/ga4-analytics-tool/internal/usecases/managing"
	"github.com/Chelsea-799/ga4-analytics-tool/pkg/log"
)

const adminPasswordLength = 16

// legacyStore é um registro do arquivo antigo. Campos ausentes ou nulos ficam vazios.
type legacyStore struct {
	StoreName     string `json:"store_name"`
	Name          string `json:"name"`
	Domain        string `json:"domain"`
	PropertyID    string `json:"property_id"`
	GA4PropertyID string `json:"ga4_property_id"`

	AdsCustomerID        string `json:"google_ads_customer_id"`
	AdsManagerCustomerID string `json:"google_ads_login_customer_id"`
	AdsDeveloperToken    string `json:"google_ads_developer_token"`
	AdsClientID          string `json:"google_ads_client_id"`
	AdsClientSecret      string `json:"google_ads_client_secret"`
	AdsRefreshToken      string `json:"google_ads_refresh_token"`

	CatalogURL        string `json:"product_count_api_url"`
	CatalogCountField string `json:"product_count_count_field"`
	CatalogHeaderKey  string `json:"product_count_header_key"`
	CatalogToken      string `json:"product_count_api_token"`
	CatalogBasicUser  string `json:"product_count_basic_user"`
	CatalogBasicPass  string `json:"product_count_basic_pass"`
	CatalogWooCK      string `json:"product_count_woo_ck"`
	CatalogWooCS      string `json:"product_count_woo_cs"`
}

func setupLogger() {
	log.Setup(logrus.InfoLevel.String())
	logrus.Info("Iniciando script de importação de lojas...")
}

// parseLegacyStores aceita os dois formatos do arquivo: objeto indexado pelo nome da loja ou
// lista de lojas. O resultado sai ordenado pelo nome.
func parseLegacyStores(raw []byte) ([]legacyStore, error) {
	var byName map[string]legacyStore
	if err := json.Unmarshal(raw, &byName); err == nil {
		stores := make([]legacyStore, 0, len(byName))
		for name, store := range byName {
			if store.StoreName == "" {
				store.StoreName = name
			}
			stores = append(stores, store)
		}
		sortStores(stores)
		return stores, nil
	}

	var list []legacyStore
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, errors.Wrap(err, "arquivo de lojas em formato desconhecido")
	}

	for i := range list {
		if list[i].StoreName == "" {
			list[i].StoreName = list[i].Name
		}
	}
	sortStores(list)
	return list, nil
}

func sortStores(stores []legacyStore) {
	sort.Slice(stores, func(i, j int) bool {
		return stores[i].StoreName < stores[j].StoreName
	})
}

// toRegisterRequest monta o cadastro novo. Lojas sem as credenciais do Google Ads não podem
// ser importadas; os campos faltantes são devolvidos para o log.
func (s legacyStore) toRegisterRequest() (*domain.RegisterStoreRequest, []string) {
	var missing []string
	required := map[string]string{
		"google_ads_customer_id":     s.AdsCustomerID,
		"google_ads_developer_token": s.AdsDeveloperToken,
		"google_ads_client_id":       s.AdsClientID,
		"google_ads_client_secret":   s.AdsClientSecret,
		"google_ads_refresh_token":   s.AdsRefreshToken,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, missing
	}

	propertyID := s.GA4PropertyID
	if propertyID == "" {
		propertyID = s.PropertyID
	}

	req := &domain.RegisterStoreRequest{
		Profile: domain.StoreProfile{
			Name:       s.StoreName,
			Domain:     s.Domain,
			CatalogURL: s.CatalogURL,
		},
		Credential: domain.StoreCredential{
			CustomerID:        s.AdsCustomerID,
			ManagerCustomerID: s.AdsManagerCustomerID,
			DeveloperToken:    s.AdsDeveloperToken,
			ClientID:          s.AdsClientID,
			ClientSecret:      s.AdsClientSecret,
			RefreshToken:      s.AdsRefreshToken,
			GA4PropertyID:     strings.TrimPrefix(propertyID, "properties/"),
		},
	}

	s.applyCatalogAuth(&req.Profile)
	return req, nil
}

// applyCatalogAuth traduz os vários modos de autenticação antigos para chave/segredo.
func (s legacyStore) applyCatalogAuth(profile *domain.StoreProfile) {
	switch {
	case s.CatalogHeaderKey != "":
		profile.CatalogCountField = "header:" + s.CatalogHeaderKey
	default:
		profile.CatalogCountField = s.CatalogCountField
	}

	switch {
	case s.CatalogWooCK != "":
		profile.CatalogKey, profile.CatalogSecret = s.CatalogWooCK, s.CatalogWooCS
	case s.CatalogBasicUser != "":
		profile.CatalogKey, profile.CatalogSecret = s.CatalogBasicUser, s.CatalogBasicPass
	case s.CatalogToken != "":
		profile.CatalogKey = s.CatalogToken
	}
}

// checkStores registra as lojas que seriam ignoradas e devolve quantas estão completas.
func checkStores(stores []legacyStore) int {
	ready := 0
	for _, store := range stores {
		if _, missing := store.toRegisterRequest(); len(missing) > 0 {
			logrus.WithFields(logrus.Fields{
				"store":   store.StoreName,
				"missing": strings.Join(missing, ","),
			}).Warn("Loja seria ignorada")
			continue
		}
		ready++
	}
	return ready
}

func importStores(ctx context.Context, manager managing.StoreManager, stores []legacyStore) (int, int) {
	logrus.Infof("Iniciando importação de %d lojas...", len(stores))
	startTime := time.Now()

	successCount := 0
	errorCount := 0

	for i, store := range stores {
		logger := logrus.WithFields(logrus.Fields{
			"store": store.StoreName,
			"index": fmt.Sprintf("%d/%d", i+1, len(stores)),
		})

		req, missing := store.toRegisterRequest()
		if len(missing) > 0 {
			logger.WithField("missing", strings.Join(missing, ",")).Warn("Loja ignorada: credenciais do Google Ads incompletas")
			errorCount++
			continue
		}

		summary, err := manager.Register(ctx, req)
		if err != nil {
			if errors.Is(err, domain.ErrStoreAlreadyExists) {
				logger.Info("Loja já cadastrada, ignorando")
			} else {
				logger.WithError(err).Error("ERRO ao importar loja")
			}
			errorCount++
			continue
		}

		logger.WithField("store_id", summary.StoreID).Info("Loja importada")
		successCount++
	}

	logrus.Infof("Importação concluída em %v. Sucesso: %d, Erros: %d", time.Since(startTime), successCount, errorCount)
	return successCount, errorCount
}

// seedAdmin cria o primeiro administrador com uma senha gerada, exibida uma única vez.
func seedAdmin(ctx context.Context, auth authenticating.Authenticator, name, email string) error {
	password, err := authenticating.GenerateStrongPassword(adminPasswordLength)
	if err != nil {
		return err
	}

	_, err = auth.CreateOperator(ctx, &domain.Operator{
		Name:         name,
		Email:        email,
		PasswordHash: password,
		RoleID:       domain.RoleAdmin,
	})
	if errors.Is(err, authenticating.ErrOperatorAlreadyExists) {
		logrus.WithField("email", email).Info("Administrador já existe, nenhuma senha gerada")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Printf("Administrador %s criado. Senha inicial: %s\n", email, password)
	return nil
}

func main() {
	setupLogger()

	file := flag.String("file", "stores_data.json", "arquivo legado de lojas")
	adminEmail := flag.String("admin-email", "", "e-mail do administrador inicial (opcional)")
	adminName := flag.String("admin-name", "Administrador", "nome do administrador inicial")
	dryRun := flag.Bool("dry-run", false, "apenas valida o arquivo, sem gravar no banco")
	flag.Parse()

	raw, err := os.ReadFile(*file)
	if err != nil {
		logrus.Fatalf("ERRO ao ler %s: %v", *file, err)
	}

	stores, err := parseLegacyStores(raw)
	if err != nil {
		logrus.Fatalf("ERRO ao interpretar %s: %v", *file, err)
	}

	if *dryRun {
		ready := checkStores(stores)
		logrus.Infof("Simulação: %d de %d lojas podem ser importadas", ready, len(stores))
		return
	}

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("ERRO ao carregar configuração: %v", err)
	}

	ctx := context.Background()

	logrus.Info("Conectando ao banco de dados...")
	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.Fatalf("ERRO ao conectar ao banco de dados: %v", err)
	}
	defer conn.Close()
	logrus.Info("Conexão com o banco de dados estabelecida com sucesso")

	if *adminEmail != "" {
		auth := authenticating.NewService(repository.NewOperatorRepository(conn), cfg)
		if err := seedAdmin(ctx, auth, *adminName, *adminEmail); err != nil {
			logrus.Fatalf("ERRO ao criar administrador: %v", err)
		}
	}

	storeRepo := repository.NewStoreRepository(conn, repository.NewSecretBox(cfg.SecretKey))
	manager := managing.NewService(
		cfg,
		storeRepo,
		googleauth.NewTokenManager(cfg, nil, metrics.Noop()),
		catalog.NewClient(cfg, nil),
	)

	if _, errorCount := importStores(ctx, manager, stores); errorCount > 0 {
		logrus.Warnf("%d lojas não foram importadas, verifique os avisos acima", errorCount)
	}
}

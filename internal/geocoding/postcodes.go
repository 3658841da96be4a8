package geocoding

import "github.com/UnknownOlympus/kiez/internal/models"

// Postcodes maps Berlin postcodes to an approximate centroid of their area.
type Postcodes map[int]models.GeoPoint

// BerlinPostcodes returns the built-in centroid table.
func BerlinPostcodes() Postcodes {
	return berlinPostcodes
}

// Lookup returns the centroid of the postcode area.
func (p Postcodes) Lookup(postcode int) (models.GeoPoint, bool) {
	point, ok := p[postcode]
	return point, ok
}

var berlinPostcodes = Postcodes{
	10115: {Latitude: 52.53225310749616, Longitude: 13.384607458757577},
	10117: {Latitude: 52.516965560388, Longitude: 13.38722234829472},
	10119: {Latitude: 52.53047717452423, Longitude: 13.405320915304019},
	10178: {Latitude: 52.52131243046372, Longitude: 13.409628466424998},
	10179: {Latitude: 52.51219339888968, Longitude: 13.416335442222064},
	10243: {Latitude: 52.51230622328652, Longitude: 13.439382729365533},
	10245: {Latitude: 52.50065849625331, Longitude: 13.464755384582356},
	10247: {Latitude: 52.516159537561606, Longitude: 13.46555361594058},
	10249: {Latitude: 52.52376255730941, Longitude: 13.442772448085373},
	10315: {Latitude: 52.51322993265686, Longitude: 13.514764286811292},
	10317: {Latitude: 52.49790145501775, Longitude: 13.490766865201651},
	10318: {Latitude: 52.48348496684792, Longitude: 13.52868724331732},
	10319: {Latitude: 52.499193681905616, Longitude: 13.51880237290777},
	10365: {Latitude: 52.52061304615122, Longitude: 13.496861997511203},
	10367: {Latitude: 52.5246228538931, Longitude: 13.482099234822453},
	10369: {Latitude: 52.529475650969495, Longitude: 13.46944982046535},
	10405: {Latitude: 52.535182312912546, Longitude: 13.42570376752267},
	10407: {Latitude: 52.53360703864684, Longitude: 13.449170806424025},
	10409: {Latitude: 52.54431847498743, Longitude: 13.441357051572137},
	10435: {Latitude: 52.53776375845449, Longitude: 13.411186295587143},
	10437: {Latitude: 52.544853189822, Longitude: 13.412580850688249},
	10439: {Latitude: 52.55215950650852, Longitude: 13.412114584540683},
	10551: {Latitude: 52.530720056080916, Longitude: 13.337163496142006},
	10553: {Latitude: 52.5305064491924, Longitude: 13.321465483262193},
	10555: {Latitude: 52.52153170911194, Longitude: 13.33545705220396},
	10557: {Latitude: 52.52332350552952, Longitude: 13.35943703868717},
	10559: {Latitude: 52.53012311902867, Longitude: 13.349920246972744},
	10585: {Latitude: 52.51519648047775, Longitude: 13.305687562670663},
	10587: {Latitude: 52.51844731471893, Longitude: 13.319516472927122},
	10589: {Latitude: 52.527550277121854, Longitude: 13.305709015285817},
	10623: {Latitude: 52.50882403120826, Longitude: 13.327363836111795},
	10625: {Latitude: 52.50945814402798, Longitude: 13.314686440987971},
	10627: {Latitude: 52.50798435303231, Longitude: 13.302995552558253},
	10629: {Latitude: 52.502795190278626, Longitude: 13.308587338266317},
	10707: {Latitude: 52.49665671691031, Longitude: 13.313752951601778},
	10709: {Latitude: 52.49388187834184, Longitude: 13.303116608927256},
	10711: {Latitude: 52.49812112980343, Longitude: 13.290451365138114},
	10713: {Latitude: 52.4850887035849, Longitude: 13.3132725311462},
	10715: {Latitude: 52.48244496141088, Longitude: 13.328877316645858},
	10717: {Latitude: 52.490797857138496, Longitude: 13.327547835159514},
	10719: {Latitude: 52.49884625285831, Longitude: 13.325678619451482},
	10777: {Latitude: 52.49745514955069, Longitude: 13.342702106333128},
	10779: {Latitude: 52.492111831434606, Longitude: 13.339475392967456},
	10781: {Latitude: 52.4935684258165, Longitude: 13.352914193132012},
	10783: {Latitude: 52.4964239900215, Longitude: 13.36237019394093},
	10785: {Latitude: 52.507309547686845, Longitude: 13.36424990258966},
	10787: {Latitude: 52.50777991902037, Longitude: 13.34386932460584},
	10789: {Latitude: 52.50166742652484, Longitude: 13.337703334254424},
	10823: {Latitude: 52.487308839107946, Longitude: 13.350881278556777},
	10825: {Latitude: 52.483759578982635, Longitude: 13.341243634796259},
	10827: {Latitude: 52.48377647229864, Longitude: 13.354257774407076},
	10829: {Latitude: 52.47618810975703, Longitude: 13.360796518251403},
	10961: {Latitude: 52.49262275989204, Longitude: 13.39747069383011},
	10963: {Latitude: 52.50016090220396, Longitude: 13.381258333215879},
	10965: {Latitude: 52.485375215726236, Longitude: 13.39488499701448},
	10967: {Latitude: 52.49050264888512, Longitude: 13.416415039260794},
	10969: {Latitude: 52.5024880493976, Longitude: 13.401131913828474},
	10997: {Latitude: 52.50092154478418, Longitude: 13.43555805758727},
	10999: {Latitude: 52.49691730607814, Longitude: 13.426558517079119},
	12043: {Latitude: 52.47989834134753, Longitude: 13.437059652549424},
	12045: {Latitude: 52.48546376140066, Longitude: 13.4392318279728},
	12047: {Latitude: 52.49052454933148, Longitude: 13.428474510622515},
	12049: {Latitude: 52.476348668074564, Longitude: 13.422009717649571},
	12051: {Latitude: 52.46690101284063, Longitude: 13.42987658460868},
	12053: {Latitude: 52.476838288722455, Longitude: 13.432528934707053},
	12055: {Latitude: 52.471208546855706, Longitude: 13.448598746173031},
	12057: {Latitude: 52.46839875771354, Longitude: 13.463283331971413},
	12059: {Latitude: 52.48091987610456, Longitude: 13.451286098618839},
	12099: {Latitude: 52.46440180369397, Longitude: 13.4023349994847},
	12101: {Latitude: 52.47849483618643, Longitude: 13.379067939668047},
	12103: {Latitude: 52.46405527434142, Longitude: 13.374691679393424},
	12105: {Latitude: 52.4492182341782, Longitude: 13.371378239048981},
	12107: {Latitude: 52.4312233429101, Longitude: 13.39169561926881},
	12109: {Latitude: 52.446437669268846, Longitude: 13.399354742820034},
	12157: {Latitude: 52.46531937874084, Longitude: 13.346192882606559},
	12159: {Latitude: 52.47367758592234, Longitude: 13.33691777492158},
	12161: {Latitude: 52.470378554493706, Longitude: 13.326968406690545},
	12163: {Latitude: 52.462641233568114, Longitude: 13.31845865212027},
	12165: {Latitude: 52.455665181867445, Longitude: 13.314838153232584},
	12167: {Latitude: 52.44859425042259, Longitude: 13.333792145887184},
	12169: {Latitude: 52.45479056786636, Longitude: 13.343532831550357},
	12203: {Latitude: 52.4443763196241, Longitude: 13.309548541854562},
	12205: {Latitude: 52.43397281284941, Longitude: 13.29452340895023},
	12207: {Latitude: 52.41988650094883, Longitude: 13.313201465002296},
	12209: {Latitude: 52.41791658317226, Longitude: 13.329097359700793},
	12247: {Latitude: 52.43947485499027, Longitude: 13.346216565231918},
	12249: {Latitude: 52.42636551712031, Longitude: 13.351813165344238},
	12277: {Latitude: 52.41339546957715, Longitude: 13.375032628919524},
	12279: {Latitude: 52.410626611040534, Longitude: 13.353053044314894},
	12305: {Latitude: 52.40326994732729, Longitude: 13.402072797096357},
	12307: {Latitude: 52.388629911251684, Longitude: 13.390696838216329},
	12309: {Latitude: 52.39048701051443, Longitude: 13.417145044045018},
	12347: {Latitude: 52.450870338262156, Longitude: 13.428134102720877},
	12349: {Latitude: 52.42525449703233, Longitude: 13.422080228855206},
	12351: {Latitude: 52.43275828308654, Longitude: 13.455512684667102},
	12353: {Latitude: 52.42273774313897, Longitude: 13.458921988798815},
	12355: {Latitude: 52.41099140301207, Longitude: 13.497828066401619},
	12357: {Latitude: 52.42930017882094, Longitude: 13.490523118452181},
	12359: {Latitude: 52.44733396802487, Longitude: 13.453134536462507},
	12435: {Latitude: 52.48655920688828, Longitude: 13.467183898610612},
	12437: {Latitude: 52.46239586702063, Longitude: 13.48168105737062},
	12439: {Latitude: 52.45277028153434, Longitude: 13.528644321780456},
	12459: {Latitude: 52.46556876524206, Longitude: 13.528082371587278},
	12487: {Latitude: 52.443705865252674, Longitude: 13.505149578645996},
	12489: {Latitude: 52.43560426111443, Longitude: 13.543153325823347},
	12524: {Latitude: 52.412832884792735, Longitude: 13.541654222271243},
	12526: {Latitude: 52.397638858747065, Longitude: 13.564209625978904},
	12527: {Latitude: 52.38562496072207, Longitude: 13.633882041175635},
	12555: {Latitude: 52.46267360803515, Longitude: 13.579098294658408},
	12557: {Latitude: 52.430343521801944, Longitude: 13.59175495071152},
	12559: {Latitude: 52.41489702770125, Longitude: 13.663272947067718},
	12587: {Latitude: 52.458611027802064, Longitude: 13.636164296385875},
	12589: {Latitude: 52.4438132942781, Longitude: 13.703360765641127},
	12619: {Latitude: 52.52348896949066, Longitude: 13.58829149686148},
	12621: {Latitude: 52.50272614501193, Longitude: 13.587807754058906},
	12623: {Latitude: 52.502591371726446, Longitude: 13.616493890819186},
	12627: {Latitude: 52.53722540813074, Longitude: 13.613493972069534},
	12629: {Latitude: 52.54131146630923, Longitude: 13.590114893983868},
	12679: {Latitude: 52.550137779217394, Longitude: 13.565985347868985},
	12681: {Latitude: 52.53690378944878, Longitude: 13.536691577327467},
	12683: {Latitude: 52.50751934032599, Longitude: 13.559059198265544},
	12685: {Latitude: 52.53908677744801, Longitude: 13.565008324791537},
	12687: {Latitude: 52.55641340047163, Longitude: 13.564473457443823},
	12689: {Latitude: 52.566476173013776, Longitude: 13.56751600687462},
	13051: {Latitude: 52.581510242877, Longitude: 13.490844938375092},
	13053: {Latitude: 52.550014431889664, Longitude: 13.504599687469637},
	13055: {Latitude: 52.540085051396055, Longitude: 13.495996562275451},
	13057: {Latitude: 52.57105312774011, Longitude: 13.541474255141146},
	13059: {Latitude: 52.58085224331766, Longitude: 13.521691039944386},
	13086: {Latitude: 52.556479096011834, Longitude: 13.448184825048454},
	13088: {Latitude: 52.560323494890454, Longitude: 13.470798827594919},
	13089: {Latitude: 52.57068024201811, Longitude: 13.44099736024904},
	13125: {Latitude: 52.63285914727104, Longitude: 13.482939796838133},
	13127: {Latitude: 52.619999928293986, Longitude: 13.43803639424625},
	13129: {Latitude: 52.59205784915984, Longitude: 13.457927558520657},
	13156: {Latitude: 52.58235941503544, Longitude: 13.399679345417574},
	13158: {Latitude: 52.59319891839218, Longitude: 13.383482175401902},
	13159: {Latitude: 52.622980185622865, Longitude: 13.39781930738672},
	13187: {Latitude: 52.569544289010025, Longitude: 13.408406728535377},
	13189: {Latitude: 52.56428133261613, Longitude: 13.421922791184404},
	13347: {Latitude: 52.54906035716649, Longitude: 13.365455385862616},
	13349: {Latitude: 52.55798834244686, Longitude: 13.347338321717679},
	13351: {Latitude: 52.55065264364231, Longitude: 13.33282903404662},
	13353: {Latitude: 52.54159282020101, Longitude: 13.349493150452554},
	13355: {Latitude: 52.54177403402419, Longitude: 13.390584510139545},
	13357: {Latitude: 52.55025478348207, Longitude: 13.382545290564279},
	13359: {Latitude: 52.55987577586028, Longitude: 13.38508861070656},
	13403: {Latitude: 52.57390962656044, Longitude: 13.322394750985106},
	13405: {Latitude: 52.55956271601847, Longitude: 13.296715655546139},
	13407: {Latitude: 52.5726565884841, Longitude: 13.351152712066776},
	13409: {Latitude: 52.567874990707, Longitude: 13.37136141499762},
	13435: {Latitude: 52.602047574882135, Longitude: 13.345583555610988},
	13437: {Latitude: 52.5904606987358, Longitude: 13.328433400733003},
	13439: {Latitude: 52.597633923946645, Longitude: 13.35836552281583},
	13465: {Latitude: 52.639894021363325, Longitude: 13.289551932921368},
	13467: {Latitude: 52.61710500376173, Longitude: 13.307476993839325},
	13469: {Latitude: 52.611886124665894, Longitude: 13.34217007480002},
	13503: {Latitude: 52.61216227960929, Longitude: 13.248754734738577},
	13505: {Latitude: 52.5839010321919, Longitude: 13.240436851292232},
	13507: {Latitude: 52.576502619970846, Longitude: 13.271706478682745},
	13509: {Latitude: 52.589187536239734, Longitude: 13.300585116675384},
	13581: {Latitude: 52.53102430675617, Longitude: 13.179372234866618},
	13583: {Latitude: 52.54365970632263, Longitude: 13.182353354198945},
	13585: {Latitude: 52.54772720782926, Longitude: 13.204912806155},
	13587: {Latitude: 52.57671807096514, Longitude: 13.185425730622057},
	13589: {Latitude: 52.55702798271659, Longitude: 13.167559316007088},
	13591: {Latitude: 52.53446995910025, Longitude: 13.140451047305051},
	13593: {Latitude: 52.51482610221952, Longitude: 13.167205216173901},
	13595: {Latitude: 52.51161478298646, Longitude: 13.19622459336038},
	13597: {Latitude: 52.52724736599811, Longitude: 13.219494683751504},
	13599: {Latitude: 52.54629375977735, Longitude: 13.23500664599951},
	13627: {Latitude: 52.53982806674212, Longitude: 13.299091755015624},
	13629: {Latitude: 52.54217370067193, Longitude: 13.266121838408706},
	14050: {Latitude: 52.52082672608213, Longitude: 13.268338227370933},
	14052: {Latitude: 52.51558920656036, Longitude: 13.256858799554047},
	14053: {Latitude: 52.515905226931764, Longitude: 13.238696178740382},
	14055: {Latitude: 52.501950954930614, Longitude: 13.244731875810201},
	14057: {Latitude: 52.507250172456125, Longitude: 13.287913704517218},
	14059: {Latitude: 52.52052390612372, Longitude: 13.287773930793634},
	14089: {Latitude: 52.47078498219171, Longitude: 13.151643265502072},
	14109: {Latitude: 52.41973521998986, Longitude: 13.143986703427162},
	14129: {Latitude: 52.446286478934425, Longitude: 13.202578358463798},
	14163: {Latitude: 52.43683095261234, Longitude: 13.238505101240266},
	14165: {Latitude: 52.41751915632142, Longitude: 13.253558879540764},
	14167: {Latitude: 52.42117084955016, Longitude: 13.276466893449365},
	14169: {Latitude: 52.44961801437708, Longitude: 13.257318230890549},
	14193: {Latitude: 52.48312900126494, Longitude: 13.236512191039548},
	14195: {Latitude: 52.458882967786316, Longitude: 13.282867034390405},
	14197: {Latitude: 52.47335862767753, Longitude: 13.311789699628607},
	14199: {Latitude: 52.477661074858325, Longitude: 13.29507096395517},
	15537: {Latitude: 52.38570793162978, Longitude: 13.687388529541318},
	15566: {Latitude: 52.459782999999995, Longitude: 13.705366666666666},
	15569: {Latitude: 52.445953729962476, Longitude: 13.756057865644234},
}
